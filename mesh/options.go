// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"

	"github.com/katalvlaran/meshtopo/conn"
)

// Option configures a Mesh via functional arguments. An invalid Option is
// recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds Mesh construction parameters.
type Options struct {
	// Alloc reserves every array the topology slots own.
	Alloc conn.Allocator

	// Name labels the mesh in log lines and in the diagnostic dump.
	Name string

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with conn.DefaultAllocator and no name.
func DefaultOptions() Options {
	return Options{Alloc: conn.DefaultAllocator}
}

// WithAllocator routes slot allocations through a. A nil allocator is a violation.
func WithAllocator(a conn.Allocator) Option {
	return func(o *Options) {
		if a == nil {
			o.err = fmt.Errorf("%w: allocator is nil", ErrOptionViolation)
			return
		}
		o.Alloc = a
	}
}

// WithName sets the mesh label.
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}
