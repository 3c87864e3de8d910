package mocktest

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Output format names accepted in MOCKHARNESS_MESSAGE_OUTPUT and in config
// files. Standard and stdout are synonyms for the console logger.
const (
	OutputStandard = "STANDARD"
	OutputStdout   = "STDOUT"
	OutputSubunit  = "SUBUNIT"
	OutputTAP      = "TAP"
	OutputXML      = "XML"
)

var validOutputs = []string{OutputStandard, OutputStdout, OutputSubunit, OutputTAP, OutputXML} //nolint:gochecknoglobals

// Config selects report formats and test filters for a run. The zero value
// means console output, no filters.
type Config struct {
	// Output lists the report formats to produce; empty means STANDARD.
	Output []string `yaml:"output"`
	// XMLFile is where the XML report is written. A "%g" in the path is
	// replaced by the group name. Empty writes XML to stdout.
	XMLFile string `yaml:"xml_file"`
	// AbortOnFailure stops a group at the first failing test.
	AbortOnFailure bool `yaml:"abort_on_failure"`
	// Run and Skip are glob patterns ('*', '?') selecting tests by name.
	Run  []string `yaml:"run"`
	Skip []string `yaml:"skip"`
	// ListOnly prints the names of the selected tests without running them.
	ListOnly bool `yaml:"list_only"`
}

// Environment variables read by ConfigFromEnv.
const (
	envMessageOutput = "MOCKHARNESS_MESSAGE_OUTPUT"
	envXMLFile       = "MOCKHARNESS_XML_FILE"
	envTestAbort     = "MOCKHARNESS_TEST_ABORT"
	envTestFilter    = "MOCKHARNESS_TEST_FILTER"
	envSkipFilter    = "MOCKHARNESS_SKIP_FILTER"
)

// ConfigFromEnv builds a Config from the MOCKHARNESS_* environment
// variables. MOCKHARNESS_MESSAGE_OUTPUT is a comma-separated list of output
// format names; MOCKHARNESS_TEST_ABORT=1 enables abort-on-failure.
func ConfigFromEnv() Config {
	var c Config
	if v := os.Getenv(envMessageOutput); v != "" {
		for _, name := range strings.Split(v, ",") {
			name = strings.ToUpper(strings.TrimSpace(name))
			if name != "" {
				c.Output = append(c.Output, name)
			}
		}
	}
	c.XMLFile = os.Getenv(envXMLFile)
	c.AbortOnFailure = os.Getenv(envTestAbort) == "1"
	if v := os.Getenv(envTestFilter); v != "" {
		c.Run = []string{v}
	}
	if v := os.Getenv(envSkipFilter); v != "" {
		c.Skip = []string{v}
	}
	return c
}

// LoadConfigFile reads a YAML config file. Settings from the environment can
// be layered on top by the caller.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config file")
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config file %s", path)
	}
	for i, name := range c.Output {
		c.Output[i] = strings.ToUpper(name)
	}
	return c, nil
}

// Filters returns the glob filters selected by the config.
func (c Config) Filters() GlobFilters {
	return GlobFilters{Run: c.Run, Skip: c.Skip}
}

// Loggers builds the TestLogger for the configured output formats, writing
// console-style formats to out. An unknown format name is an error.
func (c Config) Loggers(out io.Writer) (TestLogger, error) {
	names := c.Output
	if len(names) == 0 {
		names = []string{OutputStandard}
	}
	var loggers []TestLogger
	for _, name := range names {
		if !slices.Contains(validOutputs, name) {
			return nil, errors.Errorf("unknown output format %q (valid: %s)",
				name, strings.Join(validOutputs, ", "))
		}
		switch name {
		case OutputStandard, OutputStdout:
			loggers = append(loggers, &ConsoleTestLogger{Output: out})
		case OutputSubunit:
			loggers = append(loggers, &SubunitTestLogger{Output: out})
		case OutputTAP:
			loggers = append(loggers, &TAPTestLogger{Output: out})
		case OutputXML:
			loggers = append(loggers, &JUnitTestLogger{FilePath: c.XMLFile, Output: out})
		}
	}
	if len(loggers) == 1 {
		return loggers[0], nil
	}
	return &MultiTestLogger{Loggers: loggers}, nil
}
