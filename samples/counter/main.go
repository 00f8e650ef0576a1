// Builds a counter design with an external toolchain and runs its cocotb
// testbench under Icarus Verilog.
package main

import (
	_ "embed"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tebeka/atexit"
	"go.uber.org/zap"

	"github.com/nibrunie/hwtb/cocotb"
	"github.com/nibrunie/hwtb/hdl"
	"github.com/nibrunie/hwtb/runner"
)

//go:embed count_up.py
var countUpSrc string

var (
	toolchain = flag.String("toolchain", "hwgen", "codegen driver binary")
	simulator = flag.String("sim", runner.SimIcarus, "cocotb simulator")
)

func main() {
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	defer log.Sync()

	backend := hdl.ToolchainBuilder{}.
		WithBinary(*toolchain).
		Build()

	suite := &cocotb.Suite{}
	suite.Add("count_up", countUpSrc)

	r := runner.NewBuilder().
		WithBackend(backend).
		WithSuite(suite).
		WithSimulator(*simulator).
		WithOutput(os.Stdout).
		WithLogger(log).
		Build()

	mod := hdl.NewModule("Counter").SetParam("width", 8)

	report, err := r.Run(context.Background(), mod)
	if report != nil {
		report.WriteReport(os.Stdout)
	}
	if err != nil {
		log.Error("simulation failed", zap.Error(err))
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
