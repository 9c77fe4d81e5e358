package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/usertable/internal/intent"
	"github.com/roach88/usertable/internal/persist"
	"github.com/roach88/usertable/internal/record"
	"github.com/roach88/usertable/internal/testutil"
	"github.com/roach88/usertable/internal/view"
)

// Harness executes one session.
type Harness struct {
	ctrl    *intent.Controller
	adapter *persist.KVAdapter
	logger  *slog.Logger
}

// Run executes a session and returns the result.
//
// Each session runs against a fresh in-memory database for isolation, with
// persistence attached exactly as in a real session. IDs come from a
// testutil.SequentialIDs so the trace is reproducible.
//
// The returned error covers setup failures only. Failed expectations are
// reported in Result.Errors.
func Run(session *Session) (*Result, error) {
	return RunWithLogger(session, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with an explicit logger.
func RunWithLogger(session *Session, logger *slog.Logger) (*Result, error) {
	db, err := persist.OpenSQLite(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	adapter := persist.NewAdapter(db, persist.WithLogger(logger))
	st := persist.Restore(ctx, adapter)

	h := &Harness{
		ctrl: intent.NewController(st,
			intent.WithIDGenerator(testutil.NewSequentialIDs(session.IDPrefix)),
			intent.WithLogger(logger),
		),
		adapter: adapter,
		logger:  logger,
	}

	result := NewResult()
	for i, step := range session.Steps {
		event, err := h.execute(ctx, step)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		event.Seq = i + 1
		result.Trace = append(result.Trace, event)

		if step.Expect != nil {
			for _, msg := range check(step.Expect, event, h.ctrl.View()) {
				result.AddError(fmt.Sprintf("step %d (%s): %s", i, event.Intent, msg))
			}
		}

		h.logger.Debug("session step completed",
			"step", i,
			"intent", event.Intent,
			"outcome", event.Outcome,
		)
	}

	result.Params = h.ctrl.Params()
	result.Final = h.ctrl.View()
	stored, _ := h.adapter.Load(ctx)
	result.Stored = record.Clone(stored.Users)
	return result, nil
}

// execute runs one step and builds its trace event.
func (h *Harness) execute(ctx context.Context, step Step) (TraceEvent, error) {
	ev := TraceEvent{Intent: step.Intent(), Outcome: OutcomeOK}

	switch ev.Intent {
	case IntentAdd:
		ev.Arg = step.Add.Name
		r, err := h.ctrl.AddOne(intent.Form{Name: step.Add.Name, Age: step.Add.Age, Email: step.Add.Email})
		if err != nil {
			ev.Outcome = outcomeOf(err)
		} else {
			ev.IDs = []string{r.ID}
		}

	case IntentImport, IntentImportFile:
		var (
			added []record.Record
			err   error
		)
		if step.Import != nil {
			added, err = h.ctrl.Import(ctx, strings.NewReader(*step.Import))
		} else {
			ev.Arg = step.ImportFile
			added, err = h.ctrl.ImportFile(ctx, step.ImportFile)
		}
		switch {
		case err != nil:
			ev.Outcome = outcomeOf(err)
		case len(added) == 0:
			ev.Outcome = OutcomeNoop
		default:
			ev.IDs = idsOf(added)
		}

	case IntentDelete:
		ev.Arg = step.Delete
		if !h.ctrl.Delete(step.Delete) {
			ev.Outcome = OutcomeNoop
		}

	case IntentSearch:
		ev.Arg = *step.Search
		if h.ctrl.Params().SearchTerm == *step.Search {
			ev.Outcome = OutcomeNoop
		}
		h.ctrl.SetSearch(*step.Search)

	case IntentSort:
		ev.Arg = step.Sort
		mode, err := view.ParseSortMode(step.Sort)
		if err != nil {
			return ev, err
		}
		if h.ctrl.Params().Sort == mode {
			ev.Outcome = OutcomeNoop
		}
		if err := h.ctrl.SetSort(mode); err != nil {
			return ev, err
		}

	case IntentNext:
		if !h.ctrl.NextPage() {
			ev.Outcome = OutcomeNoop
		}

	case IntentPrev:
		if !h.ctrl.PrevPage() {
			ev.Outcome = OutcomeNoop
		}

	case IntentPage:
		ev.Arg = strconv.Itoa(step.Page)
		before := h.ctrl.Params().Page
		if h.ctrl.GoToPage(step.Page) == before {
			ev.Outcome = OutcomeNoop
		}

	default:
		return ev, fmt.Errorf("no intent set")
	}

	page := h.ctrl.View()
	ev.Page = h.ctrl.Params().Page
	ev.TotalItems = page.TotalItems
	ev.TotalPages = page.TotalPages
	return ev, nil
}

// outcomeOf maps an intent error to its trace outcome.
func outcomeOf(err error) string {
	if code := intent.CodeOf(err); code != "" {
		return string(code)
	}
	return OutcomeError
}

// check compares an expectation with what the step produced.
func check(exp *Expect, ev TraceEvent, page view.Page) []string {
	var errs []string
	if exp.Outcome != "" && exp.Outcome != ev.Outcome {
		errs = append(errs, fmt.Sprintf("outcome = %q, expected %q", ev.Outcome, exp.Outcome))
	}
	if exp.Page != 0 && exp.Page != ev.Page {
		errs = append(errs, fmt.Sprintf("page = %d, expected %d", ev.Page, exp.Page))
	}
	if exp.TotalItems != nil && *exp.TotalItems != ev.TotalItems {
		errs = append(errs, fmt.Sprintf("total_items = %d, expected %d", ev.TotalItems, *exp.TotalItems))
	}
	if exp.TotalPages != nil && *exp.TotalPages != ev.TotalPages {
		errs = append(errs, fmt.Sprintf("total_pages = %d, expected %d", ev.TotalPages, *exp.TotalPages))
	}
	if exp.Items != nil {
		got := idsOf(page.Items)
		if !slices.Equal(got, exp.Items) {
			errs = append(errs, fmt.Sprintf("items = %v, expected %v", got, exp.Items))
		}
	}
	return errs
}

func idsOf(users []record.Record) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}
