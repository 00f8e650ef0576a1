// Package config loads the YAML run configuration for the simulation
// harness.
package config

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nibrunie/hwtb/cocotb"
	"github.com/nibrunie/hwtb/hdl"
	"github.com/nibrunie/hwtb/runner"
)

// Toolchain names the external codegen driver and its fixed arguments.
type Toolchain struct {
	Binary string   `yaml:"binary"`
	Args   []string `yaml:"args"`
}

// RunConfig describes one simulation run.
type RunConfig struct {
	// Top is the name of the top module to elaborate.
	Top string `yaml:"top"`

	// Simulator is the cocotb SIM name. Defaults to icarus.
	Simulator string `yaml:"simulator"`

	Toolchain Toolchain `yaml:"toolchain"`

	// OutputDir is the build directory. Defaults to build/<top>.
	OutputDir string `yaml:"output_dir"`

	// MakeArgs are extra arguments for the make invocation.
	MakeArgs []string `yaml:"make_args"`

	// StrictLint fails the run when patched sources still contain
	// constructs the simulator rejects.
	StrictLint bool `yaml:"strict_lint"`

	// Testbenches are globs of Python coroutine files assembled into the
	// test driver, in order.
	Testbenches []string `yaml:"testbenches"`
}

// Load reads and validates a run configuration.
func Load(path string) (*RunConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}

	cfg := &RunConfig{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	if cfg.Simulator == "" {
		cfg.Simulator = "icarus"
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}

	return cfg, nil
}

// Backend builds the toolchain backend the configuration names. Toolchain
// invocations run under ctx.
func (c *RunConfig) Backend(ctx context.Context) hdl.Backend {
	return hdl.ToolchainBuilder{}.
		WithBinary(c.Toolchain.Binary).
		WithArgs(c.Toolchain.Args...).
		WithContext(ctx).
		Build()
}

// Runner returns a runner builder wired from the configuration. Callers
// attach an output writer, logger, or command runner before building.
func (c *RunConfig) Runner(backend hdl.Backend, suite *cocotb.Suite) runner.Builder {
	return runner.NewBuilder().
		WithBackend(backend).
		WithSuite(suite).
		WithSimulator(c.Simulator).
		WithOutputDirectory(c.OutputDir).
		WithMakeArgs(c.MakeArgs...).
		WithStrictLint(c.StrictLint)
}

// Validate checks that the configuration names everything a run needs.
func (c *RunConfig) Validate() error {
	if c.Top == "" {
		return errors.New("top module name is required")
	}
	if c.Toolchain.Binary == "" {
		return errors.New("toolchain binary is required")
	}
	if len(c.Testbenches) == 0 {
		return errors.New("at least one testbench is required")
	}
	return nil
}
