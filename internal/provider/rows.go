package provider

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is one raw vendor record. The readers below pull typed values out of
// it; wire fields with no alias or canonical name are simply never read.

// RowString reads a string field, coercing empty strings to nil.
func RowString(row map[string]any, key string) *string {
	v, ok := row[key]
	if !ok || v == nil {
		return nil
	}
	s := fmt.Sprintf("%v", v)
	if str, ok := v.(string); ok {
		s = str
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// RowFloat reads a numeric field, accepting float64, int, and numeric
// strings. Empty or unparseable values are nil.
func RowFloat(row map[string]any, key string) *float64 {
	v, ok := row[key]
	if !ok || v == nil {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// RowInt reads an integer field, accepting float64, int, and numeric
// strings.
func RowInt(row map[string]any, key string) *int {
	f := RowFloat(row, key)
	if f == nil {
		return nil
	}
	i := int(*f)
	return &i
}

// RowEpoch reads a Unix-seconds field. Zero, empty, and unparseable values
// are (0, false).
func RowEpoch(row map[string]any, key string) (int64, bool) {
	f := RowFloat(row, key)
	if f == nil || *f == 0 {
		return 0, false
	}
	return int64(*f), true
}
