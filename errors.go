// errors.go
package buildcfg

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/arc-language/buildcfg/pkg/backend"
	"github.com/arc-language/buildcfg/pkg/dep"
)

var (
	// ErrUnknownDependency indicates a module names a library missing from the dependency table
	ErrUnknownDependency = errors.New("unknown dependency")

	// ErrUnknownBuildSystem indicates no backend is registered for the build system
	ErrUnknownBuildSystem = backend.ErrUnknownBuildSystem

	// ErrNotConfigured indicates a descriptor was attached before it was probed
	ErrNotConfigured = dep.ErrNotConfigured
)

// UnknownDependencyError reports a required dependency name that is not declared
type UnknownDependencyError struct {
	Module     string // Module that declared the dependency
	Dependency string // Offending name, lower-cased
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("invalid library dependency: '%s' (module %s)", e.Dependency, e.Module)
}

func (e *UnknownDependencyError) Unwrap() error {
	return ErrUnknownDependency
}

// Error wraps an error with additional context
type Error struct {
	Op     string // Operation that failed
	Module string // Module name if applicable
	Err    error  // Underlying error
}

func (e *Error) Error() string {
	if e.Module != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Module, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func unknownDependency(module, name string) error {
	err := &UnknownDependencyError{Module: module, Dependency: name}
	return errors.WithHintf(err, "known dependencies: %s", strings.Join(dep.Names(), ", "))
}
