// Package args turns the untyped argument object of a tool call into typed
// values. Every failure is a *ValidationError naming the field and the
// expected shape; callers check fields in declaration order and return the
// first failure.
package args

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Args is the raw argument object of a tool call. A nil Args behaves as empty.
type Args map[string]any

// ValidationError reports a missing or malformed argument.
type ValidationError struct {
	Field    string
	Expected string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Invalid %s: expected %s", e.Field, e.Expected)
}

func invalid(field, expected string) error {
	return &ValidationError{Field: field, Expected: expected}
}

// Shapes used in error messages.
const (
	shapeString      = "non-empty string"
	shapeOptString   = "string"
	shapeInteger     = "integer"
	shapePositiveInt = "positive integer"
	shapeNumber      = "number"
	shapeBoolean     = "boolean"
	shapeStringArray = "non-empty array of strings"
	shapeGrid        = "2D array of strings"
	shapeObject      = "object"
)

func (a Args) present(field string) (any, bool) {
	v, ok := a[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns a required non-empty string.
func (a Args) String(field string) (string, error) {
	v, ok := a.present(field)
	if !ok {
		return "", invalid(field, shapeString)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", invalid(field, shapeString)
	}
	return s, nil
}

// OptionalString returns def when the field is absent or empty.
func (a Args) OptionalString(field, def string) (string, error) {
	v, ok := a.present(field)
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid(field, shapeOptString)
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// Text returns a required string that may be empty, such as replacement text.
func (a Args) Text(field string) (string, error) {
	v, ok := a.present(field)
	if !ok {
		return "", invalid(field, shapeOptString)
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid(field, shapeOptString)
	}
	return s, nil
}

// Int returns a required integer. JSON numbers must be integral.
func (a Args) Int(field string) (int64, error) {
	v, ok := a.present(field)
	if !ok {
		return 0, invalid(field, shapeInteger)
	}
	n, ok := toInt(v)
	if !ok {
		return 0, invalid(field, shapeInteger)
	}
	return n, nil
}

// OptionalPositiveInt returns def when absent and rejects values below 1.
func (a Args) OptionalPositiveInt(field string, def int64) (int64, error) {
	v, ok := a.present(field)
	if !ok {
		return def, nil
	}
	n, ok := toInt(v)
	if !ok || n < 1 {
		return 0, invalid(field, shapePositiveInt)
	}
	return n, nil
}

// OptionalIntPtr returns nil when the field is absent.
func (a Args) OptionalIntPtr(field string) (*int64, error) {
	v, ok := a.present(field)
	if !ok {
		return nil, nil
	}
	n, ok := toInt(v)
	if !ok {
		return nil, invalid(field, shapeInteger)
	}
	return &n, nil
}

// OptionalFloatPtr returns nil when the field is absent.
func (a Args) OptionalFloatPtr(field string) (*float64, error) {
	v, ok := a.present(field)
	if !ok {
		return nil, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return nil, invalid(field, shapeNumber)
	}
	return &f, nil
}

// OptionalBool returns def when the field is absent.
func (a Args) OptionalBool(field string, def bool) (bool, error) {
	p, err := a.OptionalBoolPtr(field)
	if err != nil || p == nil {
		return def, err
	}
	return *p, nil
}

// OptionalBoolPtr returns nil when the field is absent.
func (a Args) OptionalBoolPtr(field string) (*bool, error) {
	v, ok := a.present(field)
	if !ok {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, invalid(field, shapeBoolean)
	}
	return &b, nil
}

// StringSlice returns a required non-empty list of non-empty strings. Clients
// that cannot send arrays may pass a single string or a JSON-encoded array.
func (a Args) StringSlice(field string) ([]string, error) {
	v, ok := a.present(field)
	if !ok {
		return nil, invalid(field, shapeStringArray)
	}

	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case []string:
		for _, s := range t {
			items = append(items, s)
		}
	case string:
		trimmed := strings.TrimSpace(t)
		if strings.HasPrefix(trimmed, "[") {
			if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
				return nil, invalid(field, shapeStringArray)
			}
		} else {
			items = []any{t}
		}
	default:
		return nil, invalid(field, shapeStringArray)
	}

	if len(items) == 0 {
		return nil, invalid(field, shapeStringArray)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok || s == "" {
			return nil, invalid(field, shapeStringArray)
		}
		out = append(out, s)
	}
	return out, nil
}

// Grid returns a required 2D array. Cells may be strings, numbers, booleans
// or null and are rendered as strings.
func (a Args) Grid(field string) ([][]string, error) {
	v, ok := a.present(field)
	if !ok {
		return nil, invalid(field, shapeGrid)
	}
	return toGrid(field, v)
}

// OptionalGrid returns nil when the field is absent.
func (a Args) OptionalGrid(field string) ([][]string, error) {
	v, ok := a.present(field)
	if !ok {
		return nil, nil
	}
	return toGrid(field, v)
}

// OptionalObject returns nil when the field is absent.
func (a Args) OptionalObject(field string) (Args, error) {
	v, ok := a.present(field)
	if !ok {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalid(field, shapeObject)
	}
	return Args(m), nil
}

// Object returns a required object.
func (a Args) Object(field string) (Args, error) {
	obj, err := a.OptionalObject(field)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, invalid(field, shapeObject)
	}
	return obj, nil
}

// Enum returns a required value from allowed.
func (a Args) Enum(field string, allowed []string) (string, error) {
	v, ok := a.present(field)
	if !ok {
		return "", invalid(field, oneOf(allowed))
	}
	s, ok := v.(string)
	if !ok || !contains(allowed, s) {
		return "", invalid(field, oneOf(allowed))
	}
	return s, nil
}

// OptionalEnum returns def when the field is absent or empty.
func (a Args) OptionalEnum(field, def string, allowed []string) (string, error) {
	v, ok := a.present(field)
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid(field, oneOf(allowed))
	}
	if s == "" {
		return def, nil
	}
	if !contains(allowed, s) {
		return "", invalid(field, oneOf(allowed))
	}
	return s, nil
}

func oneOf(allowed []string) string {
	return "one of: " + strings.Join(allowed, ", ")
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || n > math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func toGrid(field string, v any) ([][]string, error) {
	var rows []any
	switch t := v.(type) {
	case []any:
		rows = t
	case [][]string:
		return t, nil
	default:
		return nil, invalid(field, shapeGrid)
	}

	grid := make([][]string, len(rows))
	for i, r := range rows {
		cells, ok := r.([]any)
		if !ok {
			return nil, invalid(field, shapeGrid)
		}
		row := make([]string, len(cells))
		for j, c := range cells {
			s, ok := cellString(c)
			if !ok {
				return nil, invalid(field, shapeGrid)
			}
			row[j] = s
		}
		grid[i] = row
	}
	return grid, nil
}

func cellString(v any) (string, bool) {
	switch c := v.(type) {
	case nil:
		return "", true
	case string:
		return c, true
	case bool:
		return strconv.FormatBool(c), true
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64), true
	case int:
		return strconv.Itoa(c), true
	case int64:
		return strconv.FormatInt(c, 10), true
	case json.Number:
		return c.String(), true
	}
	return "", false
}
