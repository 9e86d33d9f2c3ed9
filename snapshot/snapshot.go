// Package snapshot implements the optional persisted-state layout spec §6
// describes: p_LFU, the PRNG seed/position, every main-store and
// ghost-history entry, and the three capacities. Writing or reading a
// snapshot is always caller-initiated; the core never does either on its
// own, so the persistence Non-goal still holds.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/ivanbrykalov/lecar/lecar"
)

// envelope wraps the raw state with a checksum so a truncated or corrupted
// file is rejected on Read rather than silently restored.
type envelope struct {
	Checksum uint64            `json:"checksum"`
	State    lecar.State[string, string] `json:"state"`
}

// Write encodes the controller's current state to w as JSON, with a
// content checksum computed over the state payload.
func Write(w io.Writer, c *lecar.Controller[string, string]) error {
	st := c.Export()
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("snapshot: marshal state: %w", err)
	}
	env := envelope{Checksum: xxhash.Sum64(payload), State: st}
	enc := json.NewEncoder(w)
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("snapshot: encode envelope: %w", err)
	}
	return nil
}

// Read decodes a snapshot written by Write and rebuilds a Controller from
// it. opt supplies the Clock/Metrics the caller wants the restored
// controller to use; capacities and learner parameters come from the
// snapshot itself.
func Read(r io.Reader, opt lecar.Options) (*lecar.Controller[string, string], error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("snapshot: decode envelope: %w", err)
	}
	payload, err := json.Marshal(env.State)
	if err != nil {
		return nil, fmt.Errorf("snapshot: re-marshal state for checksum: %w", err)
	}
	if xxhash.Sum64(payload) != env.Checksum {
		return nil, fmt.Errorf("snapshot: checksum mismatch: file is corrupt or truncated")
	}
	return lecar.Restore[string, string](opt, env.State), nil
}
