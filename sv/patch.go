// Package sv rewrites emitted SystemVerilog for simulator compatibility and
// scans it for constructs the target simulator rejects.
package sv

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// A Substitution is one plain-text rewrite applied to every line.
type Substitution struct {
	Pattern     string
	Replacement string
}

// A Patcher applies an ordered substitution table to a file, line by line.
type Patcher struct {
	subs []Substitution
}

// NewPatcher creates a patcher with the given substitution table.
func NewPatcher(subs ...Substitution) Patcher {
	return Patcher{subs: subs}
}

// IcarusPatcher rewrites constructs Icarus Verilog cannot parse. The
// always_* process keywords become plain always blocks, and the
// instance-hierarchy parameter gets the default value Icarus requires.
func IcarusPatcher() Patcher {
	return NewPatcher(
		Substitution{Pattern: "always_comb", Replacement: "always"},
		Substitution{Pattern: "always_latch", Replacement: "always"},
		Substitution{Pattern: "always_ff", Replacement: "always"},
		Substitution{
			Pattern:     "parameter __INST_HIER",
			Replacement: "parameter __INST_HIER=0",
		},
	)
}

// Apply rewrites a single line.
func (p Patcher) Apply(line string) string {
	for _, sub := range p.subs {
		line = strings.ReplaceAll(line, sub.Pattern, sub.Replacement)
	}
	return line
}

// PatchFile rewrites the file in place, preserving line order.
func (p Patcher) PatchFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "patch %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "patch %s", path)
	}

	lines := strings.Split(string(raw), "\n")
	for i, line := range lines {
		lines[i] = p.Apply(line)
	}

	err = os.WriteFile(path, []byte(strings.Join(lines, "\n")), info.Mode())
	return errors.Wrapf(err, "patch %s", path)
}
