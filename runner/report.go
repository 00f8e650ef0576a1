package runner

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// A TestResult is one row of the cocotb result table.
type TestResult struct {
	Name   string
	Passed bool
}

// A Report summarizes one simulation run.
type Report struct {
	Top     string
	Results []TestResult
}

// Summary rows look like:
//
//	** test_Top.my_test    PASS    100.00    0.00    100000.00  **
var resultRow = regexp.MustCompile(`\*\*\s+(\S+)\s+(PASS|FAIL)\b`)

// ParseReport extracts the cocotb result table from captured simulator
// output. Output without a result table yields an empty report.
func ParseReport(top, output string) *Report {
	report := &Report{Top: top}

	for _, line := range strings.Split(output, "\n") {
		m := resultRow.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		report.Results = append(report.Results, TestResult{
			Name:   m[1],
			Passed: m[2] == "PASS",
		})
	}

	return report
}

// Failed returns the number of failed tests.
func (r *Report) Failed() int {
	failed := 0
	for _, result := range r.Results {
		if !result.Passed {
			failed++
		}
	}
	return failed
}

// OK reports whether the run produced results and none failed.
func (r *Report) OK() bool {
	return len(r.Results) > 0 && r.Failed() == 0
}

// WriteReport writes a formatted summary to w.
func (r *Report) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "SIMULATION REPORT: %s\n", r.Top)
	fmt.Fprintln(w, separator)

	if len(r.Results) == 0 {
		fmt.Fprintln(w, "no test results found in simulator output")
		return
	}

	for _, result := range r.Results {
		status := "PASS"
		if !result.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(w, "  %-40s %s\n", result.Name, status)
	}

	fmt.Fprintf(w, "\n%d tests, %d failed\n", len(r.Results), r.Failed())
}
