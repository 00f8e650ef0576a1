package hdl

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/nibrunie/hwtb/util"
)

// Toolchain is a Backend that drives an external codegen binary. Each stage
// maps to a subcommand of the binary; the binary owns all elaboration and
// emission state between invocations of the same working set.
type Toolchain struct {
	binary    string
	args      []string
	ctx       context.Context
	commander util.Commander

	top string
}

// ToolchainBuilder creates Toolchains.
type ToolchainBuilder struct {
	binary    string
	args      []string
	ctx       context.Context
	commander util.Commander
}

// WithBinary sets the codegen driver binary.
func (b ToolchainBuilder) WithBinary(binary string) ToolchainBuilder {
	b.binary = binary
	return b
}

// WithArgs sets extra arguments passed on every invocation.
func (b ToolchainBuilder) WithArgs(args ...string) ToolchainBuilder {
	b.args = args
	return b
}

// WithContext sets the context toolchain invocations run under, so a
// cancelled run also stops in-flight codegen stages. Defaults to
// context.Background.
func (b ToolchainBuilder) WithContext(ctx context.Context) ToolchainBuilder {
	b.ctx = ctx
	return b
}

// WithCommander sets the command runner.
func (b ToolchainBuilder) WithCommander(c util.Commander) ToolchainBuilder {
	b.commander = c
	return b
}

// Build creates the toolchain backend.
func (b ToolchainBuilder) Build() *Toolchain {
	if b.binary == "" {
		panic("toolchain needs a binary")
	}

	ctx := b.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	commander := b.commander
	if commander == nil {
		commander = util.ExecCommander{}
	}

	return &Toolchain{
		binary:    b.binary,
		args:      b.args,
		ctx:       ctx,
		commander: commander,
	}
}

func (t *Toolchain) invoke(out io.Writer, stage string, args ...string) error {
	full := append([]string{stage}, t.args...)
	full = append(full, args...)

	err := t.commander.Run(t.ctx, "", out, t.binary, full...)

	return errors.Wrapf(err, "%s %s", t.binary, stage)
}

// Elaborate implements Backend.
func (t *Toolchain) Elaborate(top *Module) error {
	t.top = top.Name

	args := []string{"--top", top.Name}

	keys := make([]string, 0, len(top.Params))
	for key := range top.Params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		args = append(args, "-P", fmt.Sprintf("%s=%v", key, top.Params[key]))
	}

	return t.invoke(io.Discard, "elaborate", args...)
}

// Generate implements Backend.
func (t *Toolchain) Generate() error {
	return t.invoke(io.Discard, "generate", "--top", t.top)
}

// Print implements Backend.
func (t *Toolchain) Print(w io.Writer) error {
	return t.invoke(w, "print", "--top", t.top)
}

// RunPasses implements Backend.
func (t *Toolchain) RunPasses() error {
	return t.invoke(io.Discard, "run-passes", "--top", t.top)
}

// EmitOutputs implements Backend.
func (t *Toolchain) EmitOutputs(dir string) error {
	return t.invoke(io.Discard, "emit", "--top", t.top, "--output-dir", dir)
}
