package hdl

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Backend is the hardware-construction framework. Elaboration algorithms,
// IR passes, and code emission all live on the other side of this
// interface.
type Backend interface {
	// Elaborate instantiates a system with the given top module.
	Elaborate(top *Module) error

	// Generate runs the module generators.
	Generate() error

	// Print writes the current intermediate representation to w.
	Print(w io.Writer) error

	// RunPasses runs the framework's IR transformation passes.
	RunPasses() error

	// EmitOutputs materializes the generated HDL sources into dir.
	EmitOutputs(dir string) error
}

// A System binds one top module to a backend and an output directory. It is
// the unit the test harness and the simulation runner operate on.
type System struct {
	backend   Backend
	top       *Module
	outputDir string
}

// SystemBuilder creates Systems.
type SystemBuilder struct {
	backend   Backend
	outputDir string
}

// WithBackend sets the framework backend.
func (b SystemBuilder) WithBackend(backend Backend) SystemBuilder {
	b.backend = backend
	return b
}

// WithOutputDirectory sets the directory that EmitOutputs materializes
// into. Defaults to build/<top name>.
func (b SystemBuilder) WithOutputDirectory(dir string) SystemBuilder {
	b.outputDir = dir
	return b
}

// Build elaborates a system with the given top module.
func (b SystemBuilder) Build(top *Module) (*System, error) {
	if b.backend == nil {
		panic("system needs a backend")
	}

	outputDir := b.outputDir
	if outputDir == "" {
		outputDir = filepath.Join("build", top.Name)
	}

	if err := b.backend.Elaborate(top); err != nil {
		return nil, errors.Wrapf(err, "elaborate %s", top.Name)
	}

	return &System{
		backend:   b.backend,
		top:       top,
		outputDir: outputDir,
	}, nil
}

// Top returns the top module of the system.
func (s *System) Top() *Module {
	return s.top
}

// OutputDirectory returns the directory EmitOutputs materializes into.
func (s *System) OutputDirectory() string {
	return s.outputDir
}

// Generate runs the module generators.
func (s *System) Generate() error {
	return errors.Wrapf(s.backend.Generate(), "generate %s", s.top.Name)
}

// Print writes the current IR to w.
func (s *System) Print(w io.Writer) error {
	return errors.Wrapf(s.backend.Print(w), "print %s", s.top.Name)
}

// RunPasses runs the IR transformation passes.
func (s *System) RunPasses() error {
	return errors.Wrapf(s.backend.RunPasses(), "run passes on %s", s.top.Name)
}

// EmitOutputs materializes the generated HDL sources into the output
// directory, creating it if needed.
func (s *System) EmitOutputs() error {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return errors.Wrapf(err, "create output directory %s", s.outputDir)
	}

	return errors.Wrapf(
		s.backend.EmitOutputs(s.outputDir), "emit outputs for %s", s.top.Name)
}
