// Package config holds Glint's ambient, process-wide tunables: the
// exported-constants-and-vars style funvibe-funxy/internal/config uses,
// rather than a struct threaded through every call.
package config

// Version is the current Glint version, set at build time via -ldflags.
var Version = "0.1.0"

// SourceFileExt is Glint's canonical source file extension.
const SourceFileExt = ".glint"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".glint", ".gl"}

// TrimSourceExt removes a recognized source extension from name, or
// returns name unchanged if none matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt reports whether path ends with a recognized source
// extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// MaxRecursionDepth is a tunable for the depth of nested script-callable
// invocations. internal/eval does not read it: invocation depth is not
// bounded, so an unbounded recursive Def/Lambda grows the host's Go stack.
var MaxRecursionDepth = 4096

// CacheCullSweepEvery is a tunable for how often internal/box.Cache runs
// its zero-refcount sweep. internal/box does not read it: Cache sweeps on
// every Wrap of a pointer and on every Release.
var CacheCullSweepEvery = 1

// IsREPLMode indicates the process is running cmd/glint's interactive
// REPL. Set once at startup by cmd/glint/cmd/repl.go.
var IsREPLMode = false

// PrintFuncName, UUIDFuncName, and the container type names are the
// bootstrap surface's well-known identifiers, named here so cmd/glint and
// internal/stdlib agree on them without an import cycle.
const (
	PrintFuncName  = "print"
	UUIDFuncName   = "uuid"
	VectorTypeName = "Vector"
	MapTypeName    = "Map"
	RangeTypeName  = "Range"
)
