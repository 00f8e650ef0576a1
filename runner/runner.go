// Package runner drives a full simulation of an elaborated design: it emits
// the HDL outputs, writes the cocotb Makefile and test driver next to them,
// patches the emitted sources for the target simulator, and invokes make.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nibrunie/hwtb/cocotb"
	"github.com/nibrunie/hwtb/hdl"
	"github.com/nibrunie/hwtb/sv"
	"github.com/nibrunie/hwtb/util"
)

// SimIcarus is the default simulator. Emitted sources are patched for it
// before the simulation starts.
const SimIcarus = "icarus"

// A Runner builds and simulates one design with a testbench suite.
type Runner struct {
	backend   hdl.Backend
	suite     *cocotb.Suite
	simulator string
	outputDir string
	makeArgs  []string
	strict    bool
	out       io.Writer
	commander util.Commander
	log       *zap.Logger
}

// Builder creates Runners.
type Builder struct {
	backend   hdl.Backend
	suite     *cocotb.Suite
	simulator string
	outputDir string
	makeArgs  []string
	strict    bool
	out       io.Writer
	commander util.Commander
	log       *zap.Logger
}

// NewBuilder returns a Builder targeting the default simulator.
func NewBuilder() Builder {
	return Builder{simulator: SimIcarus}
}

// WithBackend sets the framework backend.
func (b Builder) WithBackend(backend hdl.Backend) Builder {
	b.backend = backend
	return b
}

// WithSuite sets the testbench suite.
func (b Builder) WithSuite(suite *cocotb.Suite) Builder {
	b.suite = suite
	return b
}

// WithSimulator sets the cocotb SIM name.
func (b Builder) WithSimulator(simulator string) Builder {
	b.simulator = simulator
	return b
}

// WithOutputDirectory sets the build directory.
func (b Builder) WithOutputDirectory(dir string) Builder {
	b.outputDir = dir
	return b
}

// WithMakeArgs sets extra arguments for the make invocation.
func (b Builder) WithMakeArgs(args ...string) Builder {
	b.makeArgs = args
	return b
}

// WithStrictLint makes Run fail when the patched sources still contain
// constructs the simulator rejects.
func (b Builder) WithStrictLint(strict bool) Builder {
	b.strict = strict
	return b
}

// WithOutput sets a writer that receives the simulator output in addition
// to the captured copy used for result parsing.
func (b Builder) WithOutput(w io.Writer) Builder {
	b.out = w
	return b
}

// WithCommander sets the command runner.
func (b Builder) WithCommander(c util.Commander) Builder {
	b.commander = c
	return b
}

// WithLogger sets the logger.
func (b Builder) WithLogger(log *zap.Logger) Builder {
	b.log = log
	return b
}

// Build creates the runner.
func (b Builder) Build() *Runner {
	if b.backend == nil {
		panic("runner needs a backend")
	}
	if b.suite == nil || len(b.suite.Tests()) == 0 {
		panic("runner needs a non-empty testbench suite")
	}

	simulator := b.simulator
	if simulator == "" {
		simulator = SimIcarus
	}

	commander := b.commander
	if commander == nil {
		commander = util.ExecCommander{}
	}

	log := b.log
	if log == nil {
		log = zap.NewNop()
	}

	return &Runner{
		backend:   b.backend,
		suite:     b.suite,
		simulator: simulator,
		outputDir: b.outputDir,
		makeArgs:  b.makeArgs,
		strict:    b.strict,
		out:       b.out,
		commander: commander,
		log:       log,
	}
}

// Run elaborates mod, emits its outputs, stages the cocotb files, and runs
// the simulation. It returns the parsed report; the error is non-nil when
// any stage fails or any test fails.
func (r *Runner) Run(ctx context.Context, mod *hdl.Module) (*Report, error) {
	sys, err := hdl.SystemBuilder{}.
		WithBackend(r.backend).
		WithOutputDirectory(r.outputDir).
		Build(mod)
	if err != nil {
		return nil, err
	}

	r.log.Info("generating design", zap.String("top", mod.Name))
	if err := sys.Generate(); err != nil {
		return nil, err
	}
	if err := sys.EmitOutputs(); err != nil {
		return nil, err
	}

	outDir := sys.OutputDirectory()
	top := mod.Name

	if err := r.stage(outDir, top); err != nil {
		return nil, err
	}

	r.log.Info("running simulation",
		zap.String("top", top),
		zap.String("simulator", r.simulator),
		zap.String("dir", outDir))

	var captured bytes.Buffer
	out := io.Writer(&captured)
	if r.out != nil {
		out = io.MultiWriter(&captured, r.out)
	}

	runErr := r.commander.Run(ctx, outDir, out, "make", r.makeArgs...)
	report := ParseReport(top, captured.String())

	if runErr != nil {
		return report, errors.Wrapf(runErr, "simulate %s", top)
	}
	if len(report.Results) == 0 {
		return report, errors.Errorf(
			"simulate %s: no test results in simulator output", top)
	}
	if !report.OK() {
		return report, errors.Errorf(
			"simulate %s: %d of %d tests failed",
			top, report.Failed(), len(report.Results))
	}

	r.log.Info("simulation passed",
		zap.String("top", top),
		zap.Int("tests", len(report.Results)))

	return report, nil
}

// stage writes the Makefile and the test driver and patches the emitted
// sources for the target simulator.
func (r *Runner) stage(outDir, top string) error {
	makefile := cocotb.GenMakefile(top, r.simulator)
	makefilePath := filepath.Join(outDir, "Makefile")
	if err := os.WriteFile(makefilePath, []byte(makefile), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", makefilePath)
	}

	svPath := filepath.Join(outDir, top+".sv")
	if r.simulator == SimIcarus {
		if err := sv.IcarusPatcher().PatchFile(svPath); err != nil {
			return err
		}

		if r.strict {
			issues, err := sv.Lint(svPath)
			if err != nil {
				return err
			}
			if len(issues) > 0 {
				for _, issue := range issues {
					r.log.Warn("lint issue",
						zap.Int("line", issue.Line),
						zap.String("message", issue.Message))
				}
				return errors.Errorf(
					"lint %s: %d unsupported constructs remain",
					svPath, len(issues))
			}
		}
	}

	testfile, err := cocotb.GenTestFile(r.suite.Tests())
	if err != nil {
		return err
	}
	testfilePath := filepath.Join(outDir, fmt.Sprintf("test_%s.py", top))
	if err := os.WriteFile(testfilePath, []byte(testfile), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", testfilePath)
	}

	return nil
}
