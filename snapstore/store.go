// SPDX-License-Identifier: MIT

package snapstore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v3"
	"github.com/plan-systems/klog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/meshtopo/mesh"
	"github.com/katalvlaran/meshtopo/meshio"
)

const keyPrefix = "snap/"

// Options configures Open.
type Options struct {
	// Dir is the badger directory. Empty means an in-memory store.
	Dir string

	// InMemory keeps everything in memory even when Dir is set.
	InMemory bool

	// ReadOnly opens an existing store without write access.
	ReadOnly bool
}

// Store is a snapshot cache backed by badger. It is safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open opens or creates a store.
// Errors: ErrBadOptions, or the badger error wrapped.
func Open(opts Options) (*Store, error) {
	inMemory := opts.InMemory || opts.Dir == ""
	if inMemory && opts.ReadOnly {
		return nil, fmt.Errorf("Open: read-only store needs a directory: %w", ErrBadOptions)
	}

	dbOpts := badger.DefaultOptions(opts.Dir)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false
	if inMemory {
		dbOpts = dbOpts.WithDir("").WithValueDir("").WithInMemory(true)
	}
	// badger does not support read-only mode on windows
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("Open(%q): %w", opts.Dir, err)
	}
	klog.V(2).Infof("snapstore: opened %q (in-memory: %v)", opts.Dir, inMemory)

	return &Store{db: db}, nil
}

// Close flushes and closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores snap under key, replacing any previous value.
// Errors: ErrEmptyKey, encoding or badger errors.
func (s *Store) Put(key string, snap *mesh.Snapshot) error {
	if key == "" {
		return fmt.Errorf("Put: %w", ErrEmptyKey)
	}
	val, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("Put(%q): %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+key), val)
	})
	if err != nil {
		return fmt.Errorf("Put(%q): %w", key, err)
	}
	klog.V(3).Infof("snapstore: put %s (%d bytes)", key, len(val))

	return nil
}

// Get loads the snapshot stored under key.
// Errors: ErrEmptyKey, ErrNotFound, decoding or badger errors.
func (s *Store) Get(key string) (*mesh.Snapshot, error) {
	if key == "" {
		return nil, fmt.Errorf("Get: %w", ErrEmptyKey)
	}
	snap := &mesh.Snapshot{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, snap)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("Get(%q): %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("Get(%q): %w", key, err)
	}

	return snap, nil
}

// Delete removes the snapshot stored under key.
// Errors: ErrEmptyKey, ErrNotFound, badger errors.
func (s *Store) Delete(key string) error {
	if key == "" {
		return fmt.Errorf("Delete: %w", ErrEmptyKey)
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		k := []byte(keyPrefix + key)
		if _, err := txn.Get(k); err != nil {
			return err
		}
		return txn.Delete(k)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("Delete(%q): %w", key, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("Delete(%q): %w", key, err)
	}

	return nil
}

// Keys lists the stored keys in ascending order.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: false,
			Prefix:         []byte(keyPrefix),
		})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, strings.TrimPrefix(string(it.Item().Key()), keyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Keys: %w", err)
	}

	return keys, nil
}

// Key derives the cache key of d from its cell type, vertex count and
// cell-to-vertex lists. Meshes with equal keys have equal topology.
func Key(d *meshio.Data) string {
	name := d.Cell
	if c, err := d.RefCell(); err == nil {
		name = c.Name()
	}
	h := xxhash.New()
	buf := make([]byte, 0, 4096)
	buf = append(buf, name...)
	buf = append(buf, 0)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(d.NumVertices()))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(d.Cells)))
	for _, id := range d.Cells {
		if len(buf)+4 > cap(buf) {
			h.Write(buf)
			buf = buf[:0]
		}
		buf = binary.LittleEndian.AppendUint32(buf, id)
	}
	h.Write(buf)

	return fmt.Sprintf("%s-%016x", name, h.Sum64())
}
