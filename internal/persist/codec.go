package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/usertable/internal/record"
	"github.com/roach88/usertable/internal/state"
)

var (
	errMissingUsers = errors.New("document has no users array")
	errDuplicateIDs = errors.New("document has duplicate record ids")
)

// document is the stored shape. Users is a pointer so a missing key can be
// told apart from an empty collection.
type document struct {
	Users *[]record.Record `json:"users"`
}

// encodeState serializes st to its stored JSON form.
func encodeState(st state.State) (string, error) {
	users := st.Users
	if users == nil {
		users = []record.Record{}
	}
	data, err := json.Marshal(document{Users: &users})
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	return string(data), nil
}

// decodeState parses a stored value. Any error means "no prior state".
func decodeState(value string) (state.State, error) {
	var doc document
	if err := json.Unmarshal([]byte(value), &doc); err != nil {
		return state.State{}, fmt.Errorf("decode state: %w", err)
	}
	if doc.Users == nil {
		return state.State{}, fmt.Errorf("decode state: %w", errMissingUsers)
	}
	if !record.UniqueIDs(*doc.Users) {
		return state.State{}, fmt.Errorf("decode state: %w", errDuplicateIDs)
	}
	return state.State{Users: *doc.Users}, nil
}
