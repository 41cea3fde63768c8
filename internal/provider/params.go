package provider

import (
	"strconv"
	"strings"
	"time"
)

// String reads a string parameter. A non-string value is an error;
// an absent key returns ("", nil).
func (p Params) String(key string) (string, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", NewValidationError(key, "expected string, got %T", v)
	}
	return s, nil
}

// Int reads an integer parameter, accepting int, int64, float64 with no
// fractional part, and numeric strings.
func (p Params) Int(key string) (int, bool, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return n, true, nil
	case int64:
		return int(n), true, nil
	case float64:
		if n != float64(int(n)) {
			return 0, false, NewValidationError(key, "expected integer, got %v", n)
		}
		return int(n), true, nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false, NewValidationError(key, "expected integer, got %q", n)
		}
		return i, true, nil
	default:
		return 0, false, NewValidationError(key, "expected integer, got %T", v)
	}
}

// Bool reads a boolean parameter, accepting bool and "true"/"false" strings.
func (p Params) Bool(key string) (bool, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return false, nil
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, NewValidationError(key, "expected boolean, got %q", b)
		}
		return parsed, nil
	default:
		return false, NewValidationError(key, "expected boolean, got %T", v)
	}
}

// Date reads a date-like parameter and normalizes it to a bare UTC date.
// Accepted shapes: time.Time, "2006-01-02", RFC 3339.
func (p Params) Date(key string) (time.Time, bool, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return time.Time{}, false, nil
	}
	switch d := v.(type) {
	case time.Time:
		y, m, day := d.UTC().Date()
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), true, nil
	case string:
		for _, layout := range []string{"2006-01-02", time.RFC3339} {
			if t, err := time.Parse(layout, d); err == nil {
				y, m, day := t.UTC().Date()
				return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), true, nil
			}
		}
		return time.Time{}, false, NewValidationError(key, "expected date, got %q", d)
	default:
		return time.Time{}, false, NewValidationError(key, "expected date, got %T", v)
	}
}

// Epoch reads a date-like parameter and normalizes it to a Unix timestamp
// in UTC. Accepted shapes: epoch seconds (int or numeric string), bare
// date, RFC 3339 datetime, time.Time. A bare date maps to midnight UTC.
func (p Params) Epoch(key string) (int64, bool, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch d := v.(type) {
	case time.Time:
		return d.UTC().Unix(), true, nil
	case int:
		return int64(d), true, nil
	case int64:
		return d, true, nil
	case float64:
		return int64(d), true, nil
	case string:
		s := strings.TrimSpace(d)
		if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
			return sec, true, nil
		}
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t.UTC().Unix(), true, nil
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.UTC().Unix(), true, nil
		}
		return 0, false, NewValidationError(key, "expected date, datetime, or epoch, got %q", d)
	default:
		return 0, false, NewValidationError(key, "expected date, datetime, or epoch, got %T", v)
	}
}

// List reads a list parameter, accepting []string, []any of strings, or a
// comma-separated string. Entries are trimmed; empties dropped.
func (p Params) List(key string) ([]string, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return nil, nil
	}
	var items []string
	switch l := v.(type) {
	case []string:
		items = l
	case string:
		items = strings.Split(l, ",")
	case []any:
		for _, e := range l {
			s, ok := e.(string)
			if !ok {
				return nil, NewValidationError(key, "expected list of strings, got %T element", e)
			}
			items = append(items, s)
		}
	default:
		return nil, NewValidationError(key, "expected list, got %T", v)
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out, nil
}

// CommaJoin renders a list parameter as the comma-joined wire form used by
// vendors that take multi-value fields in a single query parameter.
func CommaJoin(items []string) string {
	return strings.Join(items, ",")
}

// RequireString reads a mandatory string parameter.
func (p Params) RequireString(key string) (string, error) {
	s, err := p.String(key)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", NewValidationError(key, "required")
	}
	return s, nil
}
