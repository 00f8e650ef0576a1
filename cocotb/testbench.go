// Package cocotb generates the files that connect an emitted design to the
// cocotb coroutine test runtime: the simulation Makefile and the Python
// test driver assembled from marked testbench coroutines.
package cocotb

import (
	"reflect"
)

// A Test is a single testbench coroutine: a name and the Python source of
// the coroutine body. Construct tests with TB so they carry the testbench
// mark; Collect skips unmarked Test values.
type Test struct {
	Name   string
	Source string

	testbench bool
}

// TB marks a coroutine source as a testbench.
func TB(name, source string) Test {
	return Test{
		Name:      name,
		Source:    source,
		testbench: true,
	}
}

var testType = reflect.TypeOf(Test{})

// Collect gathers the marked testbenches declared as exported fields of a
// bench struct, in declaration order. Fields without the testbench mark and
// fields of other types are skipped. A test with no name takes the field
// name.
func Collect(bench interface{}) []Test {
	v := reflect.ValueOf(bench)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	var tests []Test
	for i := 0; i < v.NumField(); i++ {
		field := v.Type().Field(i)
		if !field.IsExported() || field.Type != testType {
			continue
		}

		test := v.Field(i).Interface().(Test)
		if !test.testbench {
			continue
		}
		if test.Name == "" {
			test.Name = field.Name
		}

		tests = append(tests, test)
	}

	return tests
}

// A Suite is an ordered collection of testbenches.
type Suite struct {
	tests []Test
}

// Add appends a marked testbench to the suite.
func (s *Suite) Add(name, source string) *Suite {
	s.tests = append(s.tests, TB(name, source))
	return s
}

// AddStruct collects the marked testbenches of a bench struct into the
// suite.
func (s *Suite) AddStruct(bench interface{}) *Suite {
	s.tests = append(s.tests, Collect(bench)...)
	return s
}

// Tests returns the testbenches in registration order.
func (s *Suite) Tests() []Test {
	return s.tests
}
