// SPDX-License-Identifier: MIT

package snapstore

import "errors"

var (
	// ErrNotFound is returned by Get and Delete for a missing key.
	ErrNotFound = errors.New("snapstore: snapshot not found")

	// ErrBadOptions is returned by Open for an unusable configuration.
	ErrBadOptions = errors.New("snapstore: invalid options")

	// ErrEmptyKey is returned when an empty key is passed.
	ErrEmptyKey = errors.New("snapstore: empty key")
)
