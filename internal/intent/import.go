package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/roach88/usertable/internal/record"
)

// Import parses content as a JSON array of {name, age, email} objects and
// appends one record per element, in file order, with fresh IDs.
//
// Content that is not valid JSON, or whose root is not an array, yields a
// *ParseError and nothing is imported. Elements are otherwise taken as they
// come: missing or mistyped fields become zero values, and age accepts a
// number or a numeric string.
//
// The context is checked once before reading; an import that has started
// runs to completion.
func (c *Controller) Import(ctx context.Context, r io.Reader) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}

	items, err := parseImport(data)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		c.logger.Debug("import contained no records")
		return []record.Record{}, nil
	}

	users := make([]record.Record, len(items))
	for i, item := range items {
		users[i] = record.Record{
			ID:    c.ids.Generate(),
			Name:  coerceString(item["name"]),
			Age:   coerceAge(item["age"]),
			Email: coerceString(item["email"]),
		}
	}

	if !c.store.AddMany(users) {
		return nil, fmt.Errorf("import: generated ids collide with existing records")
	}

	c.logger.Info("users imported", "count", len(users))
	return users, nil
}

// ImportFile opens path and imports its content.
func (c *Controller) ImportFile(ctx context.Context, path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()
	return c.Import(ctx, f)
}

// utf8BOM is stripped from the start of import content.
var utf8BOM = []byte("\uFEFF")

// parseImport decodes the root array. Elements that are not objects come
// back as empty maps.
func parseImport(data []byte) ([]map[string]any, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, &ParseError{Message: "import file is not valid JSON", Err: err}
		}
		return nil, &ParseError{Message: arrayExpected, Err: err}
	}
	if raw == nil {
		return nil, &ParseError{Message: arrayExpected}
	}

	items := make([]map[string]any, len(raw))
	for i, elem := range raw {
		dec := json.NewDecoder(bytes.NewReader(elem))
		dec.UseNumber()
		var obj map[string]any
		if err := dec.Decode(&obj); err != nil || obj == nil {
			obj = map[string]any{}
		}
		items[i] = obj
	}
	return items, nil
}

const arrayExpected = `import file must be an array of objects, e.g. [{"name": "...", "age": 30, "email": "..."}]`

func coerceString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// coerceAge converts a JSON value to an age. Values that are not a finite,
// non-negative number become 0; fractions are truncated.
func coerceAge(v any) int {
	var f float64
	switch x := v.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(x.String(), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if x {
			return 1
		}
		return 0
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}
