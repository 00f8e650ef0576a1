package cocotb

import (
	"strings"
	"text/template"
)

// makefileTemplate follows the layout cocotb's Makefile.sim expects. The
// generated sources sit next to the Makefile, hence $(shell pwd).
var makefileTemplate = template.Must(template.New("makefile").Parse(`
TOPLEVEL_LANG = verilog
VERILOG_SOURCES = $(shell pwd)/{{.Top}}.sv
TOPLEVEL = {{.Top}}
MODULE = test_{{.Top}}
SIM={{.Sim}}

include $(shell cocotb-config --makefiles)/Makefile.sim
`))

// GenMakefile renders the cocotb simulation Makefile for a top module and a
// simulator name.
func GenMakefile(top, sim string) string {
	var b strings.Builder

	err := makefileTemplate.Execute(&b, struct {
		Top string
		Sim string
	}{Top: top, Sim: sim})
	if err != nil {
		panic(err)
	}

	return b.String()
}
