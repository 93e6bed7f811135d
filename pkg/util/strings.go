package util

import (
	"strconv"
	"strings"
)

// ParseFloat parses a user-entered decimal, accepting a comma as the decimal
// separator ("149,62").
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}

// FormatFloat renders f with the fewest digits that round-trip.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
