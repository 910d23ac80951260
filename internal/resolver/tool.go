// Package resolver locates the nanopb code generator.
//
// Discovery is an ordered list of probes, each turning an explicit Environment
// snapshot into an optional command. The first probe that succeeds wins and no
// lower-priority probe is evaluated. When every probe fails the result is an
// unresolved Resolution carrying an installation hint; that is a normal outcome,
// not an error.
//
// IMPORTANT: This package is a leaf. It may import internal/constants but
// MUST NOT import the pipeline or CLI packages.
package resolver

import (
	"strings"
)

// LocatorKind identifies how a probe looks for the generator.
type LocatorKind int

const (
	// KindVenv runs the generator module with the project-local virtualenv interpreter.
	KindVenv LocatorKind = iota

	// KindExecutable runs a globally installed generator executable found on PATH.
	KindExecutable

	// KindModule runs the generator module with the generic interpreter.
	KindModule

	// KindPackageGlob runs a generator script found in the package manager cache.
	KindPackageGlob
)

// String returns the human-readable locator name.
func (k LocatorKind) String() string {
	switch k {
	case KindVenv:
		return "venv"
	case KindExecutable:
		return "executable"
	case KindModule:
		return "module"
	case KindPackageGlob:
		return "package-glob"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for human-readable JSON output.
func (k LocatorKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// Tool is a concrete, verified command prefix for the generator.
// Stage arguments are appended with Argv; the prefix itself is never mutated.
type Tool struct {
	// Kind is the locator that produced the tool.
	Kind LocatorKind `json:"kind"`

	// Command is the invocation prefix, e.g. [python -m nanopb.generator.nanopb_generator].
	Command []string `json:"command"`

	// Version is the version reported by the liveness check, empty when unknown.
	Version string `json:"version,omitempty"`
}

// Argv returns a fresh command vector: the tool prefix followed by args.
func (t *Tool) Argv(args ...string) []string {
	argv := make([]string, 0, len(t.Command)+len(args))
	argv = append(argv, t.Command...)
	return append(argv, args...)
}

// String returns the command prefix as a single space-separated line.
func (t *Tool) String() string {
	return strings.Join(t.Command, " ")
}

// Resolution is the single outcome of a discovery run.
// Exactly one of Tool and Hint is set.
type Resolution struct {
	// Tool is the resolved generator, nil when unresolved.
	Tool *Tool `json:"tool,omitempty"`

	// Hint tells the operator how to fix an unresolved generator.
	Hint string `json:"hint,omitempty"`
}

// Resolved reports whether a generator was found.
func (r Resolution) Resolved() bool {
	return r.Tool != nil
}

// Resolved returns a Resolution holding tool.
func Resolved(tool *Tool) Resolution {
	return Resolution{Tool: tool}
}

// Unresolved returns a Resolution with no tool and the given remediation hint.
func Unresolved(hint string) Resolution {
	return Resolution{Hint: hint}
}
