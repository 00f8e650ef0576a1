package cocotb

import (
	"strings"

	"github.com/pkg/errors"
)

// GenTestFile assembles the Python test driver from testbench coroutines.
// Each source is normalized before it is wrapped as a cocotb test: the
// indent of its first line is stripped from every line, leading decorator
// lines are dropped, and a plain def becomes an async def.
func GenTestFile(tests []Test) (string, error) {
	var b strings.Builder
	b.WriteString("import cocotb\n\n")

	for _, test := range tests {
		body, err := normalizeTestSource(test)
		if err != nil {
			return "", err
		}

		b.WriteString("@cocotb.test()\n")
		b.WriteString(body)
		b.WriteString("\n\n")
	}

	return b.String(), nil
}

func normalizeTestSource(test Test) (string, error) {
	if strings.TrimSpace(test.Source) == "" {
		return "", errors.Errorf("testbench %s: empty source", test.Name)
	}

	lines := strings.Split(strings.TrimRight(test.Source, "\n"), "\n")

	// The first line sets the indent for the whole body.
	first := lines[0]
	indent := len(first) - len(strings.TrimLeft(first, " \t"))
	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}

	// Drop decorator lines; the driver applies its own.
	for len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), "@") {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return "", errors.Errorf("testbench %s: only decorators", test.Name)
	}

	switch {
	case strings.HasPrefix(lines[0], "async def "):
	case strings.HasPrefix(lines[0], "def "):
		lines[0] = "async " + lines[0]
	default:
		return "", errors.Errorf(
			"testbench %s: source does not start with a function definition",
			test.Name)
	}

	return strings.Join(lines, "\n"), nil
}
