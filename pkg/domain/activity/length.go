package activity

import (
	"regexp"
	"strconv"
)

var lengthPattern = regexp.MustCompile(`(\d+(\.\d+)?)\s*miles`)

// ParseLengthMiles extracts the number in front of the "miles" unit token,
// e.g. "3.2 miles (round trip)" -> 3.2. Anything unparseable yields 0.
func ParseLengthMiles(length string) float64 {
	if length == "" {
		return 0
	}
	m := lengthPattern.FindStringSubmatch(length)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}
