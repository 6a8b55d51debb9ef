package patient

import (
	"strconv"
	"strings"
)

// The mobile client is loose about types: numeric form fields arrive as JSON
// numbers, numeric strings, or not at all. These helpers normalize that input
// the same way everywhere: absent, blank, and unparseable values count as
// zero.

func toInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}

// truthy reports whether a loosely typed field carries a usable value:
// nil, blank strings, zero numbers, and false all count as absent.
func truthy(v interface{}) bool {
	switch n := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(n) != ""
	case float64:
		return n != 0
	case int:
		return n != 0
	case bool:
		return n
	default:
		return true
	}
}
