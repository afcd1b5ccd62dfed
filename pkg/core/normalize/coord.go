package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseCoord resolves a raw coordinate. Null, empty and the literal string
// "null" are absent; otherwise the trimmed text is parsed as a float and a
// non-numeric value is absent rather than an error. Like parseFloat, a
// numeric prefix followed by other text is accepted.
func ParseCoord(v any) *float64 {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok && (s == "" || s == "null") {
		return nil
	}

	cleaned := strings.TrimSpace(toString(v))
	match := leadingFloat.FindString(cleaned)
	if match == "" {
		return nil
	}

	n, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}
