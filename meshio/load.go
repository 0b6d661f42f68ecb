// SPDX-License-Identifier: MIT

package meshio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/plan-systems/klog"
)

// codec pairs the reader and writer of one format.
type codec struct {
	read  func(io.Reader) (*Data, error)
	write func(io.Writer, *Data) error
}

// codecs maps lower-case file extensions to formats.
var codecs = map[string]codec{
	".yaml":    {ReadYAML, WriteYAML},
	".yml":     {ReadYAML, WriteYAML},
	".mesh":    {ReadMedit, WriteMedit},
	".msgpack": {DecodeMsgpack, EncodeMsgpack},
	".mp":      {DecodeMsgpack, EncodeMsgpack},
}

// codecFor picks the format of path.
func codecFor(path string) (codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	c, ok := codecs[ext]
	if !ok {
		return codec{}, fmt.Errorf("%q: %w", ext, ErrUnknownExtension)
	}

	return c, nil
}

// Load reads the mesh stored at path. Files without a name get the base
// name of path.
// Errors: ErrUnknownExtension, ErrFormat, file system errors.
func Load(path string) (*Data, error) {
	c, err := codecFor(path)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	defer f.Close()

	d, err := c.read(f)
	if err != nil {
		return nil, fmt.Errorf("Load %s: %w", path, err)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	klog.V(2).Infof("meshio: %s: %d vertices, %d %s cells", path, d.NumVertices(), d.NumCells(), d.Cell)

	return d, nil
}

// Save writes d to path in the format its extension names.
// Errors: ErrUnknownExtension, ErrFormat, file system errors.
func Save(path string, d *Data) error {
	c, err := codecFor(path)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	if err = c.write(f, d); err != nil {
		f.Close()
		return fmt.Errorf("Save %s: %w", path, err)
	}

	return f.Close()
}
