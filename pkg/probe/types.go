package probe

import (
	"context"

	"github.com/cockroachdb/errors"
)

var (
	// ErrToolMissing indicates pkg-config or a *-config script is not installed or disabled
	ErrToolMissing = errors.New("probe tool not available")

	// ErrNotFound indicates the library could not be located
	ErrNotFound = errors.New("library not found")
)

// Runner executes an external program and returns its standard output
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// Result holds the compiler and linker information discovered for one library
type Result struct {
	IncludeDirs []string // from -I
	LibraryDirs []string // from -L
	Libs        []string // from -l
	CFlags      []string // remaining compiler flags
	LFlags      []string // remaining linker flags
}

// Empty reports whether the probe produced no usable information
func (r *Result) Empty() bool {
	return r == nil || (len(r.IncludeDirs) == 0 && len(r.LibraryDirs) == 0 &&
		len(r.Libs) == 0 && len(r.CFlags) == 0 && len(r.LFlags) == 0)
}
