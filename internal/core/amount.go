// Package core provides the expense domain types, amount parsing, and the
// category catalog.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a decimal string to a float amount. Unparseable or
// non-finite input yields 0 rather than an error; callers reject non-positive
// amounts at validation time, so garbage input falls through to the same
// rejection path as an explicit zero.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
