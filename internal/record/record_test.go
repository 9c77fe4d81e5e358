package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClone_Independent(t *testing.T) {
	in := []Record{{ID: "1", Name: "Ali"}}
	out := Clone(in)
	out[0].Name = "changed"

	assert.Equal(t, "Ali", in[0].Name)
}

func TestClone_NilYieldsEmpty(t *testing.T) {
	out := Clone(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestUniqueIDs(t *testing.T) {
	assert.True(t, UniqueIDs(nil))
	assert.True(t, UniqueIDs([]Record{{ID: "1"}, {ID: "2"}}))
	assert.False(t, UniqueIDs([]Record{{ID: "1"}, {ID: "2"}, {ID: "1"}}))
}
