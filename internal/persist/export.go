package persist

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ptarn/cadence/internal/model"
)

// Export writes the state as an indented JSON snapshot. The output is a
// valid input to Import, so an exported file always restores losslessly.
func Export(w io.Writer, state model.State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// Import parses and validates a snapshot. The whole file is accepted or
// rejected atomically: any structural problem returns an error and the
// caller's current state stays untouched.
func Import(r io.Reader) (model.State, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var state model.State
	if err := dec.Decode(&state); err != nil {
		return model.State{}, fmt.Errorf("parsing snapshot: %w", err)
	}

	companies := make(map[string]bool, len(state.Companies))
	for _, c := range state.Companies {
		if err := c.Validate(); err != nil {
			return model.State{}, fmt.Errorf("snapshot company %s: %w", c.ID, err)
		}
		if companies[c.ID] {
			return model.State{}, fmt.Errorf("snapshot has duplicate company id %s", c.ID)
		}
		companies[c.ID] = true
	}
	for _, m := range state.CommunicationMethods {
		if err := m.Validate(); err != nil {
			return model.State{}, fmt.Errorf("snapshot method %s: %w", m.ID, err)
		}
	}
	for _, comm := range state.Communications {
		if err := comm.Validate(); err != nil {
			return model.State{}, fmt.Errorf("snapshot communication %s: %w", comm.ID, err)
		}
		if !companies[comm.CompanyID] {
			return model.State{}, fmt.Errorf(
				"snapshot communication %s references unknown company %s", comm.ID, comm.CompanyID)
		}
	}

	return state, nil
}
