package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/usertable/internal/record"
	"github.com/roach88/usertable/internal/testutil"
)

func user(id, name string, age int) record.Record {
	return record.Record{ID: id, Name: name, Age: age, Email: id + "@x.com"}
}

func idsOf(users []record.Record) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}


func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	users := []record.Record{
		user("1", "Ali Reza", 30),
		user("2", "Sara", 25),
		user("3", "KALI", 40),
	}

	assert.Equal(t, []string{"1", "3"}, idsOf(Filter(users, "ali")))
	assert.Equal(t, []string{"1", "3"}, idsOf(Filter(users, "ALI")))
	assert.Equal(t, []string{"1"}, idsOf(Filter(users, "i r")))
	assert.Empty(t, Filter(users, "zzz"))
}

func TestFilter_EmptyTermPassesAll(t *testing.T) {
	users := testutil.Users(3)
	assert.Equal(t, idsOf(users), idsOf(Filter(users, "")))
}

func TestFilter_Unicode(t *testing.T) {
	users := []record.Record{user("1", "ÉMILE", 30), user("2", "علی", 20)}

	assert.Equal(t, []string{"1"}, idsOf(Filter(users, "émile")))
	assert.Equal(t, []string{"2"}, idsOf(Filter(users, "علی")))
}

func TestSort_Modes(t *testing.T) {
	users := []record.Record{
		user("a", "Bob", 40),
		user("b", "Alexandra", 20),
		user("c", "Jo", 30),
	}

	tests := []struct {
		mode SortMode
		want []string
	}{
		{SortAgeAsc, []string{"b", "c", "a"}},
		{SortAgeDesc, []string{"a", "c", "b"}},
		{SortNameLenAsc, []string{"c", "a", "b"}},
		{SortNameLenDesc, []string{"b", "a", "c"}},
		{SortMode("bogus"), []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, idsOf(Sort(users, tt.mode)))
		})
	}
}

func TestSort_Stable(t *testing.T) {
	users := []record.Record{
		user("1", "Amy", 30),
		user("2", "Bea", 20),
		user("3", "Cal", 30),
		user("4", "Dee", 20),
	}

	assert.Equal(t, []string{"2", "4", "1", "3"}, idsOf(Sort(users, SortAgeAsc)))
	assert.Equal(t, []string{"1", "3", "2", "4"}, idsOf(Sort(users, SortAgeDesc)))
	assert.Equal(t, []string{"1", "2", "3", "4"}, idsOf(Sort(users, SortNameLenAsc)))
	assert.Equal(t, []string{"1", "2", "3", "4"}, idsOf(Sort(users, SortNameLenDesc)))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	users := []record.Record{user("1", "A", 2), user("2", "B", 1)}
	Sort(users, SortAgeAsc)
	assert.Equal(t, []string{"1", "2"}, idsOf(users))
}

func TestNameLength_CountsCharacters(t *testing.T) {
	assert.Equal(t, 3, NameLength("علی"))
	assert.Equal(t, 5, NameLength("Émile"))
	assert.Equal(t, 5, NameLength("E\u0301mile"), "decomposed accent counts once")
	assert.Equal(t, 0, NameLength(""))
}

func TestParseSortMode(t *testing.T) {
	for _, m := range SortModes {
		got, err := ParseSortMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	got, err := ParseSortMode("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSort, got)

	_, err = ParseSortMode("ageasc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sort mode")
}

func TestPaginate_TwelveRecords(t *testing.T) {
	users := testutil.Users(12)

	p1 := Paginate(users, 1, PageSize)
	assert.Equal(t, 3, p1.TotalPages)
	assert.Equal(t, 12, p1.TotalItems)
	assert.Equal(t, []string{"fx-01", "fx-02", "fx-03", "fx-04", "fx-05"}, idsOf(p1.Items))

	p3 := Paginate(users, 3, PageSize)
	assert.Equal(t, []string{"fx-11", "fx-12"}, idsOf(p3.Items))

	p4 := Paginate(users, 4, PageSize)
	assert.Empty(t, p4.Items)
	assert.NotNil(t, p4.Items)
	assert.Equal(t, 3, p4.TotalPages)
}

func TestPaginate_Edges(t *testing.T) {
	tests := []struct {
		name      string
		n, page   int
		wantItems int
		wantPages int
	}{
		{"empty collection", 0, 1, 0, 0},
		{"exact multiple", 10, 2, 5, 2},
		{"page zero", 7, 0, 0, 2},
		{"negative page", 7, -1, 0, 2},
		{"single short page", 3, 1, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(testutil.Users(tt.n), tt.page, PageSize)
			assert.Len(t, p.Items, tt.wantItems)
			assert.Equal(t, tt.wantPages, p.TotalPages)
		})
	}
}

func TestPaginate_ZeroSizeUsesDefault(t *testing.T) {
	p := Paginate(testutil.Users(7), 1, 0)
	assert.Len(t, p.Items, PageSize)
}

func TestPage_DisplayTotalPages(t *testing.T) {
	assert.Equal(t, 1, Page{}.DisplayTotalPages())
	assert.Equal(t, 3, Page{TotalPages: 3}.DisplayTotalPages())
}

func TestDerive_Pipeline(t *testing.T) {
	users := []record.Record{
		user("1", "Ali", 50),
		user("2", "Bob", 10),
		user("3", "Alina", 30),
		user("4", "Khalil", 30),
		user("5", "Zed", 5),
	}

	p := Derive(users, Params{SearchTerm: "LI", Sort: SortAgeAsc, Page: 1})

	assert.Equal(t, []string{"3", "4", "1"}, idsOf(p.Items))
	assert.Equal(t, 3, p.TotalItems)
	assert.Equal(t, 1, p.TotalPages)
}

func TestDerive_DoesNotClampPage(t *testing.T) {
	p := Derive(testutil.Users(6), Params{Sort: SortAgeAsc, Page: 9})
	assert.Empty(t, p.Items)
	assert.Equal(t, 2, p.TotalPages)
}

func TestDerive_Deterministic(t *testing.T) {
	users := testutil.Users(11)
	params := Params{SearchTerm: "user", Sort: SortNameLenDesc, Page: 2}

	assert.Equal(t, Derive(users, params), Derive(users, params))
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, SortAgeAsc, p.Sort)
	assert.Equal(t, PageSize, p.PageSize)
	assert.Empty(t, p.SearchTerm)
}
