package harness

import (
	"github.com/roach88/usertable/internal/record"
	"github.com/roach88/usertable/internal/view"
)

// Step outcomes recorded in the trace. Intent errors record their code
// ("VALIDATION", "PARSE") instead.
const (
	OutcomeOK    = "ok"
	OutcomeNoop  = "noop"
	OutcomeError = "ERROR"
)

// TraceEvent records one executed step and the view right after it.
type TraceEvent struct {
	Seq        int      `json:"seq"`
	Intent     string   `json:"intent"`
	Arg        string   `json:"arg,omitempty"`
	Outcome    string   `json:"outcome"`
	IDs        []string `json:"ids,omitempty"`
	Page       int      `json:"page"`
	TotalItems int      `json:"total_items"`
	TotalPages int      `json:"total_pages"`
}

// Result is the outcome of a session run.
type Result struct {
	// Pass is true if every expectation held.
	Pass bool `json:"pass"`

	// Trace has one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Params are the view parameters after the last step.
	Params view.Params `json:"-"`

	// Final is the derived view after the last step.
	Final view.Page `json:"final"`

	// Stored is what persistence holds after the last step.
	Stored []record.Record `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
