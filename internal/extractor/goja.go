package extractor

import (
	"fmt"
	"os"

	"github.com/dop251/goja"
)

// GojaExtractor executes modules in an in-process goja VM. Each call uses a
// fresh runtime, so modules cannot observe each other.
type GojaExtractor struct{}

// NewGojaExtractor creates an extractor backed by the embedded JS engine.
func NewGojaExtractor() *GojaExtractor {
	return &GojaExtractor{}
}

// Extract compiles and runs the module with a CommonJS-style module.exports
// shim and returns the metadata export.
func (e *GojaExtractor) Extract(path string) (map[string]interface{}, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	program, err := goja.Compile(path, string(source), true)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}

	rt := goja.New()
	module := rt.NewObject()
	exports := rt.NewObject()
	if err := module.Set("exports", exports); err != nil {
		return nil, fmt.Errorf("module init: %w", err)
	}
	if err := rt.Set("module", module); err != nil {
		return nil, fmt.Errorf("module init: %w", err)
	}
	if err := rt.Set("exports", exports); err != nil {
		return nil, fmt.Errorf("module init: %w", err)
	}

	if _, err := rt.RunProgram(program); err != nil {
		return nil, fmt.Errorf("execute %s: %w", path, err)
	}

	value := module.Get("exports")
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return nil, fmt.Errorf("%s: module exports must be an object", path)
	}
	obj := value.ToObject(rt)
	if obj == nil {
		return nil, fmt.Errorf("%s: module exports must be an object", path)
	}

	raw := obj.Get("metadata")
	if raw == nil || goja.IsUndefined(raw) || goja.IsNull(raw) {
		return nil, fmt.Errorf("%s: metadata export missing", path)
	}

	var meta map[string]interface{}
	if err := rt.ExportTo(raw, &meta); err != nil {
		return nil, fmt.Errorf("%s: metadata export invalid: %w", path, err)
	}
	return meta, nil
}
