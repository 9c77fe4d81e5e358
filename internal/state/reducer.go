package state

import "github.com/roach88/usertable/internal/record"

// State is the persisted part of the table.
type State struct {
	Users []record.Record `json:"users"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	return State{Users: record.Clone(s.Users)}
}

// Reduce applies a to s and returns the next state.
//
// The returned bool reports whether the collection changed. When it is false
// the input state is returned as-is. Reduce never mutates s.
//
// Rejected (unchanged) cases:
//   - ActionAddUser whose ID already exists
//   - ActionAddUsers where any ID exists or repeats inside the batch
//   - ActionAddUsers with an empty batch
//   - ActionDeleteUser for an absent ID
//   - unknown action types
func Reduce(s State, a Action) (State, bool) {
	switch a.Type {
	case ActionAddUser:
		if indexOf(s.Users, a.User.ID) >= 0 {
			return s, false
		}
		next := make([]record.Record, len(s.Users), len(s.Users)+1)
		copy(next, s.Users)
		return State{Users: append(next, a.User)}, true

	case ActionAddUsers:
		if len(a.Users) == 0 || !canAppend(s.Users, a.Users) {
			return s, false
		}
		next := make([]record.Record, len(s.Users), len(s.Users)+len(a.Users))
		copy(next, s.Users)
		return State{Users: append(next, a.Users...)}, true

	case ActionDeleteUser:
		i := indexOf(s.Users, a.ID)
		if i < 0 {
			return s, false
		}
		next := make([]record.Record, 0, len(s.Users)-1)
		next = append(next, s.Users[:i]...)
		next = append(next, s.Users[i+1:]...)
		return State{Users: next}, true
	}

	return s, false
}

func indexOf(users []record.Record, id string) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// canAppend reports whether batch can be appended to users without
// introducing a duplicate ID.
func canAppend(users, batch []record.Record) bool {
	seen := make(map[string]struct{}, len(users)+len(batch))
	for _, u := range users {
		seen[u.ID] = struct{}{}
	}
	for _, u := range batch {
		if _, dup := seen[u.ID]; dup {
			return false
		}
		seen[u.ID] = struct{}{}
	}
	return true
}
