// Package harness reduces boilerplate in unit tests of the
// hardware-construction framework. A Harness elaborates a module and drives
// the generate, print, run-passes, and emit-outputs stages according to its
// flags.
package harness

import (
	"io"
	"os"

	"github.com/nibrunie/hwtb/hdl"
)

// A Harness elaborates modules and conditionally runs the post-elaboration
// pipeline on them.
type Harness struct {
	backend   hdl.Backend
	printW    io.Writer
	outputDir string
	params    map[string]interface{}

	generate    bool
	print       bool
	runPasses   bool
	emitOutputs bool
}

// Builder creates Harnesses. The zero Builder runs no pipeline stages; use
// NewBuilder for the usual defaults (generate and print on).
type Builder struct {
	backend   hdl.Backend
	printW    io.Writer
	outputDir string
	params    map[string]interface{}

	generate    bool
	print       bool
	runPasses   bool
	emitOutputs bool
}

// NewBuilder returns a Builder with the default pipeline flags: generate
// and print on, run-passes and emit-outputs off.
func NewBuilder() Builder {
	return Builder{
		generate: true,
		print:    true,
	}
}

// WithBackend sets the framework backend.
func (b Builder) WithBackend(backend hdl.Backend) Builder {
	b.backend = backend
	return b
}

// WithPrintWriter sets the writer the IR is printed to. Defaults to stdout.
func (b Builder) WithPrintWriter(w io.Writer) Builder {
	b.printW = w
	return b
}

// WithOutputDirectory sets the directory emitted outputs go to.
func (b Builder) WithOutputDirectory(dir string) Builder {
	b.outputDir = dir
	return b
}

// WithParams sets generator parameters applied to elaborated modules.
func (b Builder) WithParams(params map[string]interface{}) Builder {
	b.params = params
	return b
}

// WithGenerate controls whether Elaborate runs the module generators. When
// off, the print, run-passes, and emit-outputs stages are skipped as well.
func (b Builder) WithGenerate(generate bool) Builder {
	b.generate = generate
	return b
}

// WithPrint controls whether the IR is printed after generation.
func (b Builder) WithPrint(print bool) Builder {
	b.print = print
	return b
}

// WithRunPasses controls whether the IR passes run after generation.
func (b Builder) WithRunPasses(runPasses bool) Builder {
	b.runPasses = runPasses
	return b
}

// WithEmitOutputs controls whether outputs are emitted after generation.
func (b Builder) WithEmitOutputs(emitOutputs bool) Builder {
	b.emitOutputs = emitOutputs
	return b
}

// Build creates the harness.
func (b Builder) Build() *Harness {
	if b.backend == nil {
		panic("harness needs a backend")
	}

	printW := b.printW
	if printW == nil {
		printW = os.Stdout
	}

	return &Harness{
		backend:     b.backend,
		printW:      printW,
		outputDir:   b.outputDir,
		params:      b.params,
		generate:    b.generate,
		print:       b.print,
		runPasses:   b.runPasses,
		emitOutputs: b.emitOutputs,
	}
}

// Elaborate instantiates a system with mod as the top module and drives the
// configured pipeline stages. The module is registered in the global scope
// so generator code can reference it by name.
func (h *Harness) Elaborate(mod *hdl.Module) (*hdl.System, error) {
	for key, value := range h.params {
		mod.SetParam(key, value)
	}

	hdl.Register(mod)

	sys, err := hdl.SystemBuilder{}.
		WithBackend(h.backend).
		WithOutputDirectory(h.outputDir).
		Build(mod)
	if err != nil {
		return nil, err
	}

	if !h.generate {
		return sys, nil
	}

	if err := sys.Generate(); err != nil {
		return nil, err
	}

	if h.print {
		if err := sys.Print(h.printW); err != nil {
			return nil, err
		}
	}

	if h.runPasses {
		if err := sys.RunPasses(); err != nil {
			return nil, err
		}
	}

	if h.emitOutputs {
		if err := sys.EmitOutputs(); err != nil {
			return nil, err
		}
	}

	return sys, nil
}
