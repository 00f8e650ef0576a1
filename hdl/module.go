// Package hdl defines the call surface to the hardware-construction
// framework. The framework itself (elaboration, IR passes, code emission)
// lives behind the Backend interface; this package only carries module
// handles between the test harness and the framework.
package hdl

import "sync"

// A Module is a handle to a hardware module description. The framework
// resolves the name to an actual module declaration during elaboration.
// Params are forwarded to parametric module generators.
type Module struct {
	Name   string
	Params map[string]interface{}
}

// NewModule creates a module handle.
func NewModule(name string) *Module {
	return &Module{
		Name:   name,
		Params: make(map[string]interface{}),
	}
}

// SetParam records a generator parameter on the module.
func (m *Module) SetParam(key string, value interface{}) *Module {
	m.Params[key] = value
	return m
}

var (
	registryMu sync.Mutex
	registry   = make(map[string]*Module)
)

// Register adds a module to the global scope so that generator code can
// reference it by name. Registering the same name again replaces the
// previous entry.
func Register(m *Module) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[m.Name] = m
}

// Lookup finds a previously registered module.
func Lookup(name string) (*Module, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	m, ok := registry[name]
	return m, ok
}
