// SPDX-License-Identifier: MIT

package conn

import "fmt"

// Validate checks the CSR invariants of a built relation:
//
//   - Offsets has at least one entry and Offsets[0] == 0;
//   - Offsets is non-decreasing and Offsets[Num()] == NumIncident();
//   - no entity's slice holds the same id twice.
//
// An Unbuilt slot is valid when it owns no arrays.
// Errors: ErrCorrupt wrapped with the first violation found.
// Complexity: O(n + m) time, O(max slice) scratch.
func (c *Connectivity) Validate() error {
	if !c.IsBuilt() {
		if c.Offsets != nil || c.Indices != nil {
			return fmt.Errorf("Validate: unbuilt slot owns arrays: %w", ErrCorrupt)
		}
		return nil
	}
	if len(c.Offsets) == 0 {
		return fmt.Errorf("Validate: missing offsets: %w", ErrCorrupt)
	}
	if c.Offsets[0] != 0 {
		return fmt.Errorf("Validate: offsets[0] = %d: %w", c.Offsets[0], ErrCorrupt)
	}
	n := c.Num()
	for i := 0; i < n; i++ {
		if c.Offsets[i+1] < c.Offsets[i] {
			return fmt.Errorf("Validate: offsets decrease at %d: %w", i, ErrCorrupt)
		}
	}
	if int(c.Offsets[n]) != len(c.Indices) {
		return fmt.Errorf("Validate: offsets[%d] = %d, n_incident = %d: %w",
			n, c.Offsets[n], len(c.Indices), ErrCorrupt)
	}
	if (c.state == BuiltEmpty) != (len(c.Indices) == 0) {
		return fmt.Errorf("Validate: state %s with %d incidences: %w", c.state, len(c.Indices), ErrCorrupt)
	}

	seen := make(map[uint32]struct{})
	for i := 0; i < n; i++ {
		clear(seen)
		for _, j := range c.slice(uint32(i)) {
			if _, dup := seen[j]; dup {
				return fmt.Errorf("Validate: entity %d lists %d twice: %w", i, j, ErrCorrupt)
			}
			seen[j] = struct{}{}
		}
	}

	return nil
}

// ValidateTargets checks that every stored id is below numTargets.
func (c *Connectivity) ValidateTargets(numTargets int) error {
	for k, j := range c.Indices {
		if int64(j) >= int64(numTargets) {
			return fmt.Errorf("ValidateTargets: indices[%d] = %d not below %d: %w", k, j, numTargets, ErrCorrupt)
		}
	}

	return nil
}
