// SPDX-License-Identifier: MIT

package meshio

import "errors"

// Sentinel errors for mesh input and output.
var (
	// ErrFormat indicates malformed or inconsistent mesh data.
	ErrFormat = errors.New("meshio: bad mesh data")

	// ErrUnknownExtension indicates a path whose extension names no known format.
	ErrUnknownExtension = errors.New("meshio: unknown file extension")
)
