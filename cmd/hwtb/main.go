// Command hwtb elaborates hardware modules through an external codegen
// toolchain and runs cocotb testbenches against the emitted design.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"go.uber.org/zap"

	"github.com/nibrunie/hwtb/cocotb"
	"github.com/nibrunie/hwtb/config"
	"github.com/nibrunie/hwtb/harness"
	"github.com/nibrunie/hwtb/hdl"
)

func main() {
	root := &cobra.Command{
		Use:           "hwtb",
		Short:         "Test harness for hardware elaboration and simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(runCmd(), elaborateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hwtb:", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func runCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build the design and run its testbenches",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			log, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer log.Sync()

			suite, err := loadSuite(cfg.Testbenches)
			if err != nil {
				return err
			}

			backend := cfg.Backend(cmd.Context())

			r := cfg.Runner(backend, suite).
				WithOutput(os.Stdout).
				WithLogger(log).
				Build()

			report, err := r.Run(cmd.Context(), hdl.NewModule(cfg.Top))
			if report != nil {
				report.WriteReport(os.Stdout)
			}

			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "run.yaml",
		"run configuration file")

	return cmd
}

func elaborateCmd() *cobra.Command {
	var (
		binary    string
		top       string
		outputDir string
		runPasses bool
		emit      bool
		quiet     bool
	)

	cmd := &cobra.Command{
		Use:   "elaborate",
		Short: "Elaborate a module and print its IR",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := hdl.ToolchainBuilder{}.
				WithBinary(binary).
				WithContext(cmd.Context()).
				Build()

			h := harness.NewBuilder().
				WithBackend(backend).
				WithPrint(!quiet).
				WithRunPasses(runPasses).
				WithEmitOutputs(emit).
				WithOutputDirectory(outputDir).
				Build()

			_, err := h.Elaborate(hdl.NewModule(top))
			return err
		},
	}

	cmd.Flags().StringVar(&binary, "toolchain", "hwgen", "codegen driver binary")
	cmd.Flags().StringVar(&top, "top", "", "top module name")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory")
	cmd.Flags().BoolVar(&runPasses, "run-passes", false, "run IR passes")
	cmd.Flags().BoolVar(&emit, "emit", false, "emit outputs")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "do not print the IR")
	cmd.MarkFlagRequired("top")

	return cmd
}

// loadSuite assembles the testbench suite from Python coroutine file globs.
// Test names derive from the file names; matches of one glob load in sorted
// order.
func loadSuite(patterns []string) (*cocotb.Suite, error) {
	suite := &cocotb.Suite{}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "testbench glob %s", pattern)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("no testbenches match %s", pattern)
		}

		for _, path := range matches {
			src, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}

			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			suite.Add(name, string(src))
		}
	}

	return suite, nil
}
