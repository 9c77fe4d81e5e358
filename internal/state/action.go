package state

import "github.com/roach88/usertable/internal/record"

// ActionType distinguishes between action kinds.
type ActionType int

const (
	// ActionAddUser appends a single record.
	ActionAddUser ActionType = iota + 1
	// ActionAddUsers appends a batch of records, preserving their order.
	ActionAddUsers
	// ActionDeleteUser removes the record with a given ID.
	ActionDeleteUser
)

// String returns the action name used in logs.
func (t ActionType) String() string {
	switch t {
	case ActionAddUser:
		return "users/addUser"
	case ActionAddUsers:
		return "users/addUsers"
	case ActionDeleteUser:
		return "users/deleteUser"
	default:
		return "users/unknown"
	}
}

// Action describes one mutation of the collection.
// Only the fields relevant to Type are read.
type Action struct {
	Type  ActionType
	User  record.Record
	Users []record.Record
	ID    string
}

// AddUser builds an ActionAddUser.
func AddUser(r record.Record) Action {
	return Action{Type: ActionAddUser, User: r}
}

// AddUsers builds an ActionAddUsers.
func AddUsers(rs []record.Record) Action {
	return Action{Type: ActionAddUsers, Users: rs}
}

// DeleteUser builds an ActionDeleteUser.
func DeleteUser(id string) Action {
	return Action{Type: ActionDeleteUser, ID: id}
}
