// Package aggregator sums volume, reach and AVE across a loosely-typed report tree.
package aggregator

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToNum coerces a JSON value to a finite number.
// Numbers pass through, numeric strings are parsed, booleans become 1 or 0,
// and anything else (objects, arrays, nil, unparsable strings) becomes 0.
func ToNum(v any) float64 {
	var f float64

	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		f = parseNum(string(n))
	case string:
		f = parseNum(n)
	case bool:
		if n {
			f = 1
		}
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return f
}

// parseNum accepts decimal literals and unsigned 0x/0o/0b integers.
// Digit separators, signed prefixed literals and hex floats are rejected.
func parseNum(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if hasBasePrefix(s) {
		if strings.ContainsRune(s, '_') {
			return 0
		}

		u, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return 0
		}

		return float64(u)
	}

	if strings.ContainsAny(s, "_xXpP") {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return f
}

func hasBasePrefix(s string) bool {
	return len(s) > 2 && s[0] == '0' && strings.ContainsRune("xXoObB", rune(s[1]))
}
