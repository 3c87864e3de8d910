package mocktest

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	o "github.com/mockharness/mockharness/framework/opt"
)

// JUnitTestLogger buffers results while the group runs and writes a JUnit
// XML document when it finishes. If FilePath is set, the report goes there,
// with any "%g" in the path replaced by the group name; otherwise it goes to
// Output (or stdout).
type JUnitTestLogger struct {
	FilePath string
	Output   io.Writer

	results []jUnitTestStatus
	started time.Time
}

type jUnitTestStatus struct {
	result  TestResult
	skipped o.Maybe[string]
}

// Struct definitions for the JUnit XML schema - see https://github.com/jstemmer/go-junit-report

type jUnitXMLDocument struct {
	XMLName xml.Name            `xml:"testsuites"`
	Suites  []jUnitXMLTestSuite `xml:"testsuite"`
}

type jUnitXMLTestSuite struct {
	XMLName   xml.Name           `xml:"testsuite"`
	Tests     int                `xml:"tests,attr"`
	Failures  int                `xml:"failures,attr"`
	Errors    int                `xml:"errors,attr"`
	Skipped   int                `xml:"skipped,attr"`
	Time      string             `xml:"time,attr"`
	Name      string             `xml:"name,attr"`
	TestCases []jUnitXMLTestCase `xml:"testcase"`
}

type jUnitXMLTestCase struct {
	XMLName     xml.Name             `xml:"testcase"`
	Classname   string               `xml:"classname,attr"`
	Name        string               `xml:"name,attr"`
	Time        string               `xml:"time,attr"`
	SkipMessage *jUnitXMLSkipMessage `xml:"skipped,omitempty"`
	Failure     *jUnitXMLFailure     `xml:"failure,omitempty"`
}

type jUnitXMLSkipMessage struct {
	Message string `xml:"message,attr"`
}

type jUnitXMLFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
}

func (j *JUnitTestLogger) GroupStarted(string, int) {
	j.started = time.Now()
	j.results = nil
}

func (j *JUnitTestLogger) TestStarted(string) {}

func (j *JUnitTestLogger) TestFinished(result TestResult) {
	status := jUnitTestStatus{result: result}
	if result.Status == StatusSkipped {
		status.skipped = o.Some(result.SkipReason)
	}
	j.results = append(j.results, status)
}

func (j *JUnitTestLogger) GroupFinished(summary Summary) error {
	suite := jUnitXMLTestSuite{
		Name:     summary.Group,
		Tests:    len(j.results),
		Failures: summary.Failed,
		Errors:   summary.Errored,
		Skipped:  summary.Skipped,
		Time:     jUnitDurationString(summary.Elapsed),
	}
	for _, status := range j.results {
		result := status.result
		testCase := jUnitXMLTestCase{
			Classname: summary.Group,
			Name:      result.Name,
			Time:      jUnitDurationString(result.Elapsed),
		}
		if status.skipped.IsDefined() {
			testCase.SkipMessage = &jUnitXMLSkipMessage{Message: status.skipped.Value()}
		}
		if !result.OK() {
			failureType := "failure"
			if result.Status == StatusErrored {
				failureType = "error"
			}
			var messages []string
			for _, e := range result.Errors {
				messages = append(messages, e.Error())
			}
			testCase.Failure = &jUnitXMLFailure{
				Message: strings.Join(messages, "\n"),
				Type:    failureType,
			}
		}
		suite.TestCases = append(suite.TestCases, testCase)
	}

	doc := jUnitXMLDocument{Suites: []jUnitXMLTestSuite{suite}}
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if j.FilePath != "" {
		path := strings.ReplaceAll(j.FilePath, "%g", summary.Group)
		return os.WriteFile(path, data, 0644) //nolint:gosec
	}
	out := j.Output
	if out == nil {
		out = os.Stdout
	}
	_, err = out.Write(data)
	return err
}

func jUnitDurationString(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
