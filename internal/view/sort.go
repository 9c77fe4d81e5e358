package view

import (
	"cmp"
	"fmt"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/usertable/internal/record"
)

// SortMode selects the ordering of the derived view.
type SortMode string

const (
	SortAgeAsc      SortMode = "ageAsc"
	SortAgeDesc     SortMode = "ageDesc"
	SortNameLenAsc  SortMode = "nameLenAsc"
	SortNameLenDesc SortMode = "nameLenDesc"
)

// DefaultSort is the mode used when none is chosen.
const DefaultSort = SortAgeAsc

// SortModes lists every valid mode in display order.
var SortModes = []SortMode{SortAgeAsc, SortAgeDesc, SortNameLenAsc, SortNameLenDesc}

// ParseSortMode validates a user-supplied mode name.
// An empty string yields DefaultSort.
func ParseSortMode(s string) (SortMode, error) {
	if s == "" {
		return DefaultSort, nil
	}
	m := SortMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("invalid sort mode %q: must be one of %v", s, SortModes)
	}
	return m, nil
}

// Valid reports whether m is one of SortModes.
func (m SortMode) Valid() bool {
	return slices.Contains(SortModes, m)
}

// NameLength returns the number of characters in name after NFC
// normalization, so a precomposed and a decomposed "é" count the same.
func NameLength(name string) int {
	return utf8.RuneCountInString(norm.NFC.String(name))
}

// Sort returns a stably sorted copy of users. Ties keep their input order.
// An unknown mode returns the input order unchanged.
func Sort(users []record.Record, mode SortMode) []record.Record {
	out := record.Clone(users)

	var key func(record.Record) int
	desc := false
	switch mode {
	case SortAgeAsc:
		key = func(r record.Record) int { return r.Age }
	case SortAgeDesc:
		key, desc = func(r record.Record) int { return r.Age }, true
	case SortNameLenAsc:
		key = func(r record.Record) int { return NameLength(r.Name) }
	case SortNameLenDesc:
		key, desc = func(r record.Record) int { return NameLength(r.Name) }, true
	default:
		return out
	}

	slices.SortStableFunc(out, func(a, b record.Record) int {
		if desc {
			return cmp.Compare(key(b), key(a))
		}
		return cmp.Compare(key(a), key(b))
	})
	return out
}
