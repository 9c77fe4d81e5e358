package record

// Record is one user entry in the table.
type Record struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
}

// Clone returns a copy of records that shares no backing array with the input.
// A nil input yields an empty, non-nil slice.
func Clone(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

// UniqueIDs reports whether no two records share an ID.
func UniqueIDs(records []Record) bool {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			return false
		}
		seen[r.ID] = struct{}{}
	}
	return true
}
