package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/usertable/internal/record"
)

// Snapshot is the golden-file form of a session run.
type Snapshot struct {
	Session string       `json:"session"`
	Trace   []TraceEvent `json:"trace"`
	Final   FinalView    `json:"final"`
}

// FinalView is the view state after the last step.
type FinalView struct {
	SearchTerm string          `json:"search_term"`
	Sort       string          `json:"sort"`
	Page       int             `json:"page"`
	TotalItems int             `json:"total_items"`
	TotalPages int             `json:"total_pages"`
	Items      []record.Record `json:"items"`
}

// NewSnapshot builds the snapshot of result for the named session.
func NewSnapshot(name string, result *Result) Snapshot {
	items := result.Final.Items
	if items == nil {
		items = []record.Record{}
	}
	return Snapshot{
		Session: name,
		Trace:   result.Trace,
		Final: FinalView{
			SearchTerm: result.Params.SearchTerm,
			Sort:       string(result.Params.Sort),
			Page:       result.Params.Page,
			TotalItems: result.Final.TotalItems,
			TotalPages: result.Final.TotalPages,
			Items:      items,
		},
	}
}

// Marshal renders the snapshot as indented JSON with a trailing newline.
func (s Snapshot) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RunWithGolden executes a session and compares its snapshot against a
// golden file stored in testdata/golden/{session.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if the session fails to execute.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, session *Session) (*Result, error) {
	t.Helper()

	result, err := Run(session)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, session.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against the named golden file
// without re-running the session.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := NewSnapshot(name, result).Marshal()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
