// SPDX-License-Identifier: MIT

// Package snapstore persists mesh topology snapshots in a badger key-value
// store, so derived relations can be reloaded instead of recomputed.
//
// Snapshots are stored msgpack-encoded under "snap/<key>". Key derives a
// stable key from the parts of a mesh that determine its topology: the cell
// type, the vertex count and the cell-to-vertex lists. Coordinates do not
// enter the key.
//
// Usage
//
//	st, err := snapstore.Open(snapstore.Options{Dir: ".meshcache"})
//	if err != nil { ... }
//	defer st.Close()
//
//	key := snapstore.Key(data)
//	snap, err := st.Get(key)
//	if errors.Is(err, snapstore.ErrNotFound) {
//		// derive, then st.Put(key, snap)
//	}
package snapstore
