package view

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/usertable/internal/record"
)

// lower is language-neutral lowercasing. A cases.Caser is stateful, so each
// call builds its own.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Filter returns the users whose lower-cased name contains the lower-cased
// term, in input order. An empty term keeps everyone.
func Filter(users []record.Record, term string) []record.Record {
	if term == "" {
		return record.Clone(users)
	}

	needle := lower(term)
	out := make([]record.Record, 0, len(users))
	for _, u := range users {
		if strings.Contains(lower(u.Name), needle) {
			out = append(out, u)
		}
	}
	return out
}
