package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	gomock "github.com/golang/mock/gomock"
	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nibrunie/hwtb/cocotb"
	"github.com/nibrunie/hwtb/hdl"
)

type commanderCall struct {
	dir  string
	name string
	args []string
}

// fakeCommander records invocations and plays back canned simulator output.
type fakeCommander struct {
	calls  []commanderCall
	output string
	err    error
}

func (f *fakeCommander) Run(
	ctx context.Context,
	dir string,
	out io.Writer,
	name string,
	args ...string,
) error {
	f.calls = append(f.calls, commanderCall{dir: dir, name: name, args: args})
	fmt.Fprint(out, f.output)
	return f.err
}

const emittedSV = `module Counter(input clk);
  parameter __INST_HIER;
  always_ff @(posedge clk) begin
  end
  always_comb begin
  end
endmodule
`

var _ = ginkgo.Describe("Runner", func() {
	var (
		mockCtrl    *gomock.Controller
		mockBackend *MockBackend
		commander   *fakeCommander
		suite       *cocotb.Suite
		outDir      string
	)

	ginkgo.BeforeEach(func() {
		mockCtrl = gomock.NewController(ginkgo.GinkgoT())
		mockBackend = NewMockBackend(mockCtrl)
		outDir = ginkgo.GinkgoT().TempDir()

		commander = &fakeCommander{
			output: "** test_Counter.count_up  PASS  100.00  0.00  1000.00 **\n",
		}

		suite = &cocotb.Suite{}
		suite.Add("count_up", "def count_up(dut):\n    assert dut is not None\n")

		mockBackend.EXPECT().Elaborate(gomock.Any()).AnyTimes()
		mockBackend.EXPECT().Generate().AnyTimes()
		mockBackend.EXPECT().EmitOutputs(outDir).
			DoAndReturn(func(dir string) error {
				return os.WriteFile(
					filepath.Join(dir, "Counter.sv"), []byte(emittedSV), 0o644)
			}).
			AnyTimes()
	})

	ginkgo.AfterEach(func() {
		mockCtrl.Finish()
	})

	newRunner := func() *Runner {
		return NewBuilder().
			WithBackend(mockBackend).
			WithSuite(suite).
			WithOutputDirectory(outDir).
			WithCommander(commander).
			Build()
	}

	ginkgo.It("should stage the build directory and run make there", func() {
		report, err := newRunner().Run(context.Background(), hdl.NewModule("Counter"))

		Expect(err).ToNot(HaveOccurred())
		Expect(report.OK()).To(BeTrue())

		Expect(commander.calls).To(HaveLen(1))
		Expect(commander.calls[0].name).To(Equal("make"))
		Expect(commander.calls[0].dir).To(Equal(outDir))

		makefile, readErr := os.ReadFile(filepath.Join(outDir, "Makefile"))
		Expect(readErr).ToNot(HaveOccurred())
		Expect(string(makefile)).To(ContainSubstring("TOPLEVEL = Counter"))
		Expect(string(makefile)).To(ContainSubstring("MODULE = test_Counter"))
		Expect(string(makefile)).To(ContainSubstring("SIM=icarus"))

		testfile, readErr := os.ReadFile(filepath.Join(outDir, "test_Counter.py"))
		Expect(readErr).ToNot(HaveOccurred())
		Expect(string(testfile)).To(ContainSubstring("@cocotb.test()"))
		Expect(string(testfile)).To(ContainSubstring("async def count_up(dut):"))
	})

	ginkgo.It("should patch the emitted sources for icarus", func() {
		_, err := newRunner().Run(context.Background(), hdl.NewModule("Counter"))
		Expect(err).ToNot(HaveOccurred())

		patched, readErr := os.ReadFile(filepath.Join(outDir, "Counter.sv"))
		Expect(readErr).ToNot(HaveOccurred())
		Expect(string(patched)).ToNot(ContainSubstring("always_ff"))
		Expect(string(patched)).ToNot(ContainSubstring("always_comb"))
		Expect(string(patched)).To(ContainSubstring("parameter __INST_HIER=0"))
	})

	ginkgo.It("should not patch for other simulators", func() {
		r := NewBuilder().
			WithBackend(mockBackend).
			WithSuite(suite).
			WithSimulator("verilator").
			WithOutputDirectory(outDir).
			WithCommander(commander).
			Build()

		_, err := r.Run(context.Background(), hdl.NewModule("Counter"))
		Expect(err).ToNot(HaveOccurred())

		unpatched, readErr := os.ReadFile(filepath.Join(outDir, "Counter.sv"))
		Expect(readErr).ToNot(HaveOccurred())
		Expect(string(unpatched)).To(ContainSubstring("always_ff"))

		makefile, readErr := os.ReadFile(filepath.Join(outDir, "Makefile"))
		Expect(readErr).ToNot(HaveOccurred())
		Expect(string(makefile)).To(ContainSubstring("SIM=verilator"))
	})

	ginkgo.It("should pass extra make arguments through", func() {
		r := NewBuilder().
			WithBackend(mockBackend).
			WithSuite(suite).
			WithOutputDirectory(outDir).
			WithMakeArgs("SIM_ARGS=-v").
			WithCommander(commander).
			Build()

		_, err := r.Run(context.Background(), hdl.NewModule("Counter"))

		Expect(err).ToNot(HaveOccurred())
		Expect(commander.calls[0].args).To(Equal([]string{"SIM_ARGS=-v"}))
	})

	ginkgo.It("should report failing tests as an error", func() {
		commander.output = "" +
			"** test_Counter.count_up    PASS  100.00  0.00  1000.00 **\n" +
			"** test_Counter.count_down  FAIL  100.00  0.00  1000.00 **\n"

		report, err := newRunner().Run(context.Background(), hdl.NewModule("Counter"))

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("1 of 2 tests failed"))
		Expect(report.Failed()).To(Equal(1))
	})

	ginkgo.It("should treat output without a result table as a failure", func() {
		commander.output = "make: nothing to be done\n"

		report, err := newRunner().Run(context.Background(), hdl.NewModule("Counter"))

		Expect(err).To(HaveOccurred())
		Expect(report.Results).To(BeEmpty())
	})

	ginkgo.It("should pass strict lint once the sources are patched", func() {
		r := NewBuilder().
			WithBackend(mockBackend).
			WithSuite(suite).
			WithOutputDirectory(outDir).
			WithStrictLint(true).
			WithCommander(commander).
			Build()

		_, err := r.Run(context.Background(), hdl.NewModule("Counter"))

		Expect(err).ToNot(HaveOccurred())
	})

	ginkgo.It("should wrap make failures", func() {
		commander.err = fmt.Errorf("exit status 2")

		_, err := newRunner().Run(context.Background(), hdl.NewModule("Counter"))

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("simulate Counter"))
	})

	ginkgo.It("should panic without a suite", func() {
		Expect(func() {
			NewBuilder().WithBackend(mockBackend).Build()
		}).To(Panic())
	})
})
