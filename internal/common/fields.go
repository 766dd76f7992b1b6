package common

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

type ColumnKind int

const (
	TextColumn ColumnKind = iota
	IntColumn
	// PhoneColumn is text restricted to exactly ten digits.
	PhoneColumn
	// NullableTextColumn is text that also accepts null, stored as SQL NULL.
	NullableTextColumn
)

// Columns is an allow-list of column names that callers may filter or assign.
type Columns map[string]ColumnKind

// FieldValue is one allow-listed column with a value already coerced to its kind
// (int64 for IntColumn, string or nil for NullableTextColumn, string otherwise).
type FieldValue struct {
	Column string
	Value  interface{}
}

// Coerce checks column against the allow-list and converts raw to the column's kind.
func (cols Columns) Coerce(column string, raw interface{}) (FieldValue, error) {
	kind, ok := cols[column]
	if !ok {
		return FieldValue{}, NewValidationError(column, "field is not allowed")
	}

	switch kind {
	case IntColumn:
		n, err := toInt64(raw)
		if err != nil {
			return FieldValue{}, NewValidationError(column, "must be an integer")
		}
		return FieldValue{Column: column, Value: n}, nil
	case PhoneColumn:
		s, ok := raw.(string)
		if !ok || !IsPhone(s) {
			return FieldValue{}, NewValidationError(column, "must be exactly 10 digits")
		}
		return FieldValue{Column: column, Value: s}, nil
	case NullableTextColumn:
		if raw == nil {
			return FieldValue{Column: column, Value: nil}, nil
		}
		s, ok := raw.(string)
		if !ok {
			return FieldValue{}, NewValidationError(column, "must be a string or null")
		}
		return FieldValue{Column: column, Value: s}, nil
	default:
		s, ok := raw.(string)
		if !ok {
			return FieldValue{}, NewValidationError(column, "must be a string")
		}
		return FieldValue{Column: column, Value: s}, nil
	}
}

// Filters coerces query-string style equality predicates. Empty values are skipped.
func (cols Columns) Filters(raw map[string]string) ([]FieldValue, error) {
	out := make([]FieldValue, 0, len(raw))
	for _, column := range sortedKeys(raw) {
		if raw[column] == "" {
			continue
		}
		fv, err := cols.Coerce(column, raw[column])
		if err != nil {
			return nil, err
		}
		out = append(out, fv)
	}
	return out, nil
}

// Assignments coerces a partial update body. An empty body is rejected.
func (cols Columns) Assignments(raw map[string]interface{}) ([]FieldValue, error) {
	if len(raw) == 0 {
		return nil, NewValidationError("body", "no fields to update")
	}
	out := make([]FieldValue, 0, len(raw))
	for _, column := range sortedKeys(raw) {
		fv, err := cols.Coerce(column, raw[column])
		if err != nil {
			return nil, err
		}
		out = append(out, fv)
	}
	return out, nil
}

func toInt64(raw interface{}) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("not an integer: %v", v)
		}
		// 2^63 itself is representable as float64 but not as int64
		if v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, fmt.Errorf("out of range: %v", v)
		}
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", raw)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
