// Package util provides small helpers shared by the toolchain backend and
// the simulation runner.
package util

import (
	"context"
	"io"
	"os/exec"
)

// Commander runs external commands. The toolchain backend and the
// simulation runner take a Commander so tests can intercept subprocess
// invocations.
type Commander interface {
	// Run executes name with args in dir, streaming combined output to out.
	Run(ctx context.Context, dir string, out io.Writer, name string, args ...string) error
}

// ExecCommander runs commands through os/exec.
type ExecCommander struct{}

// Run implements Commander.
func (ExecCommander) Run(
	ctx context.Context,
	dir string,
	out io.Writer,
	name string,
	args ...string,
) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out

	return cmd.Run()
}
