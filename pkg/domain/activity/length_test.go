package activity

import "testing"

func TestParseLengthMiles(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "Decimal round trip", input: "3.2 miles (round trip)", expected: 3.2},
		{name: "Integer loop", input: "3 miles (loop)", expected: 3},
		{name: "Leading zero", input: "0.88 miles (one way)", expected: 0.88},
		{name: "Two decimals", input: "5.25 miles (round trip)", expected: 5.25},
		{name: "Trailing note", input: "10.0 miles (round trip to lake)", expected: 10},
		{name: "No space before unit", input: "7miles", expected: 7},
		{name: "Empty", input: "", expected: 0},
		{name: "No unit", input: "about 4 km", expected: 0},
		{name: "Unit without number", input: "many miles", expected: 0},
		{name: "First match wins", input: "2 miles out, 3 miles back", expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLengthMiles(tt.input); got != tt.expected {
				t.Errorf("ParseLengthMiles(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
