package mocktest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(envMessageOutput, "tap, xml")
	t.Setenv(envXMLFile, "out-%g.xml")
	t.Setenv(envTestAbort, "1")
	t.Setenv(envTestFilter, "alloc_*")
	t.Setenv(envSkipFilter, "*_slow")

	c := ConfigFromEnv()
	assert.Equal(t, []string{"TAP", "XML"}, c.Output)
	assert.Equal(t, "out-%g.xml", c.XMLFile)
	assert.True(t, c.AbortOnFailure)
	assert.Equal(t, []string{"alloc_*"}, c.Run)
	assert.Equal(t, []string{"*_slow"}, c.Skip)
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv(envMessageOutput, "")
	t.Setenv(envXMLFile, "")
	t.Setenv(envTestAbort, "")
	t.Setenv(envTestFilter, "")
	t.Setenv(envSkipFilter, "")

	c := ConfigFromEnv()
	assert.Empty(t, c.Output)
	assert.False(t, c.AbortOnFailure)
	assert.Nil(t, c.Run)
	assert.Nil(t, c.Skip)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
output: [tap, standard]
xml_file: report.xml
abort_on_failure: true
run:
  - alloc_*
skip:
  - "*_slow"
list_only: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	c, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"TAP", "STANDARD"}, c.Output)
	assert.Equal(t, "report.xml", c.XMLFile)
	assert.True(t, c.AbortOnFailure)
	assert.Equal(t, []string{"alloc_*"}, c.Run)
	assert.Equal(t, []string{"*_slow"}, c.Skip)
	assert.True(t, c.ListOnly)
}

func TestLoadConfigFileErrors(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: [unclosed"), 0600))
	_, err = LoadConfigFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestConfigLoggers(t *testing.T) {
	single, err := Config{}.Loggers(os.Stdout)
	require.NoError(t, err)
	assert.IsType(t, &ConsoleTestLogger{}, single)

	multi, err := Config{Output: []string{"TAP", "SUBUNIT", "XML"}}.Loggers(os.Stdout)
	require.NoError(t, err)
	require.IsType(t, &MultiTestLogger{}, multi)
	assert.Len(t, multi.(*MultiTestLogger).Loggers, 3)

	_, err = Config{Output: []string{"BOGUS"}}.Loggers(os.Stdout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown output format "BOGUS"`)
}

func TestConfigFilters(t *testing.T) {
	f := Config{Run: []string{"a*"}, Skip: []string{"ab"}}.Filters().AsFilter()
	assert.True(t, f.Match("ac"))
	assert.False(t, f.Match("ab"))
	assert.False(t, f.Match("b"))
}
