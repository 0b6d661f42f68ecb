// SPDX-License-Identifier: MIT

package meshgen

import "errors"

// Sentinel errors for mesh generation.
var (
	// ErrBadResolution indicates a subdivision count below one.
	ErrBadResolution = errors.New("meshgen: every axis needs at least one subdivision")

	// ErrBadExtent indicates a side length that is not a positive finite number.
	ErrBadExtent = errors.New("meshgen: side lengths must be positive and finite")

	// ErrBadDescription indicates a mesh description Parse cannot read.
	ErrBadDescription = errors.New("meshgen: bad mesh description")
)
