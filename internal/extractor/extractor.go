// Package extractor obtains the self-declared metadata export from a
// JavaScript strategy module by executing it.
package extractor

// Extractor produces the metadata mapping a module declares about itself.
// Implementations execute the module in an isolated context and must not
// mutate the target file.
type Extractor interface {
	// Extract runs the module at path and returns its metadata export.
	Extract(path string) (map[string]interface{}, error)
}
