package sv

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// An Issue is one construct in an emitted source file that the target
// simulator rejects.
type Issue struct {
	Line    int
	Text    string
	Message string
}

var rejectedKeywords = []string{"always_comb", "always_latch", "always_ff"}

// Lint scans an emitted SystemVerilog file for constructs Icarus Verilog
// rejects: always_* process keywords and instance-hierarchy parameters
// without a default value. A patched file produces no issues.
func Lint(path string) ([]Issue, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "lint %s", path)
	}

	var issues []Issue
	for i, line := range strings.Split(string(raw), "\n") {
		for _, keyword := range rejectedKeywords {
			if strings.Contains(line, keyword) {
				issues = append(issues, Issue{
					Line:    i + 1,
					Text:    strings.TrimSpace(line),
					Message: keyword + " is not supported by iverilog",
				})
			}
		}

		if idx := strings.Index(line, "parameter __INST_HIER"); idx >= 0 {
			rest := line[idx+len("parameter __INST_HIER"):]
			if !strings.HasPrefix(rest, "=") {
				issues = append(issues, Issue{
					Line:    i + 1,
					Text:    strings.TrimSpace(line),
					Message: "parameter without a default value",
				})
			}
		}
	}

	return issues, nil
}
