// Package format defines the pluggable external formatter: an opaque
// string-to-string function the orchestrator invokes after rewriting, never
// itself a fatal step.
package format

// Formatter transforms one file's source text, e.g. by shelling out to a
// language's canonical formatter. A nil Formatter is treated as NoOp.
type Formatter func(source string) (string, error)

// NoOp returns source unchanged. It is the default when no external
// formatter is configured.
func NoOp(source string) (string, error) {
	return source, nil
}
