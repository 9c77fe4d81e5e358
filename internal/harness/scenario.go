package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/usertable/internal/view"
)

// Session is a scripted sequence of intents.
type Session struct {
	// Name uniquely identifies this session. Also names its golden file.
	Name string `yaml:"name"`

	// Description explains what this session exercises.
	Description string `yaml:"description"`

	// IDPrefix overrides the "user" prefix of generated IDs.
	IDPrefix string `yaml:"id_prefix,omitempty"`

	// Steps run in order.
	Steps []Step `yaml:"steps"`
}

// Step is one intent. Exactly one of the intent fields must be set.
type Step struct {
	Add        *AddStep `yaml:"add,omitempty"`
	Import     *string  `yaml:"import,omitempty"`
	ImportFile string   `yaml:"import_file,omitempty"`
	Delete     string   `yaml:"delete,omitempty"`
	Search     *string  `yaml:"search,omitempty"`
	Sort       string   `yaml:"sort,omitempty"`
	Next       bool     `yaml:"next,omitempty"`
	Prev       bool     `yaml:"prev,omitempty"`
	Page       int      `yaml:"page,omitempty"`

	// Expect is checked after the step runs. Nil means no checks.
	Expect *Expect `yaml:"expect,omitempty"`
}

// AddStep carries the raw add-one form fields.
type AddStep struct {
	Name  string `yaml:"name"`
	Age   string `yaml:"age"`
	Email string `yaml:"email"`
}

// Expect lists the observations to verify after a step.
// Unset fields are not checked.
type Expect struct {
	// Outcome is "ok", "noop", "VALIDATION" or "PARSE".
	Outcome    string   `yaml:"outcome,omitempty"`
	Page       int      `yaml:"page,omitempty"`
	TotalItems *int     `yaml:"total_items,omitempty"`
	TotalPages *int     `yaml:"total_pages,omitempty"`
	Items      []string `yaml:"items,omitempty"`
}

// Intent names used in traces.
const (
	IntentAdd        = "add"
	IntentImport     = "import"
	IntentImportFile = "import_file"
	IntentDelete     = "delete"
	IntentSearch     = "search"
	IntentSort       = "sort"
	IntentNext       = "next"
	IntentPrev       = "prev"
	IntentPage       = "page"
)

// Intent returns the name of the intent the step sets, or "" if it sets
// none. It does not check for extra intents; see validateSession.
func (s Step) Intent() string {
	switch {
	case s.Add != nil:
		return IntentAdd
	case s.Import != nil:
		return IntentImport
	case s.ImportFile != "":
		return IntentImportFile
	case s.Delete != "":
		return IntentDelete
	case s.Search != nil:
		return IntentSearch
	case s.Sort != "":
		return IntentSort
	case s.Next:
		return IntentNext
	case s.Prev:
		return IntentPrev
	case s.Page != 0:
		return IntentPage
	}
	return ""
}

func (s Step) intentCount() int {
	set := []bool{
		s.Add != nil,
		s.Import != nil,
		s.ImportFile != "",
		s.Delete != "",
		s.Search != nil,
		s.Sort != "",
		s.Next,
		s.Prev,
		s.Page != 0,
	}
	n := 0
	for _, b := range set {
		if b {
			n++
		}
	}
	return n
}

// LoadSession reads and parses a session YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
//
// import_file paths are resolved relative to the session file.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	session, err := ParseSession(data)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for i := range session.Steps {
		p := session.Steps[i].ImportFile
		if p != "" && !filepath.IsAbs(p) {
			session.Steps[i].ImportFile = filepath.Join(base, p)
		}
	}
	return session, nil
}

// ParseSession parses session YAML with strict field checking.
func ParseSession(data []byte) (*Session, error) {
	var session Session
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateSession(&session); err != nil {
		return nil, fmt.Errorf("invalid session: %w", err)
	}
	return &session, nil
}

// validateSession checks that required fields are present and valid.
func validateSession(s *Session) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		switch step.intentCount() {
		case 0:
			return fmt.Errorf("step %d: no intent set", i)
		case 1:
		default:
			return fmt.Errorf("step %d: more than one intent set", i)
		}
		if step.Sort != "" {
			if _, err := view.ParseSortMode(step.Sort); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
		if step.Page < 0 {
			return fmt.Errorf("step %d: page must be positive", i)
		}
	}
	return nil
}
