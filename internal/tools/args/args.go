package args

import (
	"fmt"
	"time"
)

// Account extracts the account name from tool arguments, defaulting to
// "default" when absent or empty.
func Account(args map[string]any) string {
	if v, ok := args["account"].(string); ok && v != "" {
		return v
	}
	return "default"
}

// String returns a required non-empty string argument.
func String(args map[string]any, name string) (string, error) {
	v, ok := args[name].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return v, nil
}

// OptionalString returns a string argument or the default when absent or
// empty.
func OptionalString(args map[string]any, name, def string) string {
	if v, ok := args[name].(string); ok && v != "" {
		return v
	}
	return def
}

// Int64 returns an integer argument or the default when absent. JSON decoding
// hands numbers over as float64, but raw int values are accepted too.
func Int64(args map[string]any, name string, def int64) int64 {
	switch v := args[name].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return def
}

// RequiredInt64 returns an integer argument, failing when it is absent.
func RequiredInt64(args map[string]any, name string) (int64, error) {
	switch v := args[name].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	}
	return 0, fmt.Errorf("%s is required", name)
}

// Bool returns a boolean argument or the default when absent.
func Bool(args map[string]any, name string, def bool) bool {
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// StringList returns an optional array-of-strings argument. Absent means nil;
// a present array must contain only strings.
func StringList(args map[string]any, name string) ([]string, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array of strings", name)
	}

	result := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be a string", name, i)
		}
		result = append(result, s)
	}
	return result, nil
}

// StringOrList parses an argument that is either a single string or an array
// of strings. The argument is required and no element may be empty.
func StringOrList(args map[string]any, name string) ([]string, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%s is required", name)
	}

	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil, fmt.Errorf("%s cannot be empty", name)
		}
		return []string{v}, nil
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("%s cannot be empty", name)
		}
		result := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", name, i)
			}
			if s == "" {
				return nil, fmt.Errorf("%s[%d] cannot be empty", name, i)
			}
			result = append(result, s)
		}
		return result, nil
	}
	return nil, fmt.Errorf("%s must be a string or array of strings", name)
}

// Table returns a required two-dimensional array argument, as used for
// spreadsheet cell ranges. Cell values keep whatever scalar type JSON
// decoding produced.
func Table(args map[string]any, name string) ([][]any, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%s is required", name)
	}

	rows, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array of rows", name)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s cannot be empty", name)
	}

	result := make([][]any, 0, len(rows))
	for i, row := range rows {
		cells, ok := row.([]any)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be an array of cell values", name, i)
		}
		result = append(result, cells)
	}
	return result, nil
}

// Time returns a required timestamp argument. RFC 3339 is the primary format;
// a bare date is accepted for all-day values.
func Time(args map[string]any, name string) (time.Time, error) {
	v, err := String(args, name)
	if err != nil {
		return time.Time{}, err
	}
	return parseTime(name, v)
}

// OptionalTime returns a timestamp argument, or the zero time when absent.
func OptionalTime(args map[string]any, name string) (time.Time, error) {
	v, ok := args[name].(string)
	if !ok || v == "" {
		return time.Time{}, nil
	}
	return parseTime(name, v)
}

func parseTime(name, value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%s must be an RFC 3339 timestamp or YYYY-MM-DD date, got %q", name, value)
}
