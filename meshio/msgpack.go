// SPDX-License-Identifier: MIT

package meshio

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// EncodeMsgpack writes d in msgpack form.
// Errors: ErrFormat when d is invalid, writer errors otherwise.
func EncodeMsgpack(w io.Writer, d *Data) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("EncodeMsgpack: %w", err)
	}
	if err := msgpack.NewEncoder(w).Encode(d); err != nil {
		return fmt.Errorf("EncodeMsgpack: %w", err)
	}

	return nil
}

// DecodeMsgpack reads one msgpack-encoded mesh.
// Errors: ErrFormat.
func DecodeMsgpack(r io.Reader) (*Data, error) {
	d := &Data{}
	if err := msgpack.NewDecoder(r).Decode(d); err != nil {
		return nil, fmt.Errorf("DecodeMsgpack: %w: %w", ErrFormat, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("DecodeMsgpack: %w", err)
	}

	return d, nil
}
