package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/usertable/internal/record"
)

func rec(id, name string, age int) record.Record {
	return record.Record{ID: id, Name: name, Age: age, Email: id + "@x.com"}
}

func ids(users []record.Record) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func TestReduce_AddUserAppends(t *testing.T) {
	s := State{Users: []record.Record{rec("1", "A", 1)}}

	next, changed := Reduce(s, AddUser(rec("2", "B", 2)))

	require.True(t, changed)
	assert.Equal(t, []string{"1", "2"}, ids(next.Users))
	assert.Len(t, s.Users, 1, "input state must not be mutated")
}

func TestReduce_AddUserDuplicateRejected(t *testing.T) {
	s := State{Users: []record.Record{rec("1", "A", 1)}}

	next, changed := Reduce(s, AddUser(rec("1", "Other", 9)))

	assert.False(t, changed)
	assert.Equal(t, s, next)
}

func TestReduce_AddUsersPreservesOrder(t *testing.T) {
	s := State{Users: []record.Record{rec("1", "A", 1)}}

	next, changed := Reduce(s, AddUsers([]record.Record{rec("3", "C", 3), rec("2", "B", 2)}))

	require.True(t, changed)
	assert.Equal(t, []string{"1", "3", "2"}, ids(next.Users))
}

func TestReduce_AddUsersAllOrNothing(t *testing.T) {
	s := State{Users: []record.Record{rec("1", "A", 1)}}

	tests := []struct {
		name  string
		batch []record.Record
	}{
		{"collides with existing", []record.Record{rec("2", "B", 2), rec("1", "A", 1)}},
		{"repeats inside batch", []record.Record{rec("2", "B", 2), rec("2", "B", 2)}},
		{"empty batch", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, changed := Reduce(s, AddUsers(tt.batch))
			assert.False(t, changed)
			assert.Equal(t, []string{"1"}, ids(next.Users))
		})
	}
}

func TestReduce_DeleteUser(t *testing.T) {
	s := State{Users: []record.Record{rec("1", "A", 1), rec("2", "B", 2), rec("3", "C", 3)}}

	next, changed := Reduce(s, DeleteUser("2"))

	require.True(t, changed)
	assert.Equal(t, []string{"1", "3"}, ids(next.Users))
	assert.Equal(t, []string{"1", "2", "3"}, ids(s.Users))
}

func TestReduce_DeleteMissingIsNoop(t *testing.T) {
	s := State{Users: []record.Record{rec("1", "A", 1)}}

	next, changed := Reduce(s, DeleteUser("nope"))

	assert.False(t, changed)
	assert.Equal(t, s, next)
}

func TestReduce_UnknownActionIsNoop(t *testing.T) {
	s := State{Users: []record.Record{rec("1", "A", 1)}}

	next, changed := Reduce(s, Action{Type: ActionType(99)})

	assert.False(t, changed)
	assert.Equal(t, s, next)
}

func TestActionType_String(t *testing.T) {
	assert.Equal(t, "users/addUser", ActionAddUser.String())
	assert.Equal(t, "users/addUsers", ActionAddUsers.String())
	assert.Equal(t, "users/deleteUser", ActionDeleteUser.String())
	assert.Equal(t, "users/unknown", ActionType(0).String())
}
