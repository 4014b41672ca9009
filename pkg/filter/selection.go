package filter

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownDimension is returned for a dimension name outside Dimensions.
var ErrUnknownDimension = errors.New("unknown filter dimension")

// Dimension names one filter axis. Values double as query parameter names.
type Dimension string

const (
	DimensionDifficulty Dimension = "difficulty"
	DimensionDistance   Dimension = "distance"
	DimensionLength     Dimension = "length"
	DimensionStreamType Dimension = "streamType"
)

// Dimensions lists every filter axis in query parameter order.
var Dimensions = []Dimension{DimensionDifficulty, DimensionDistance, DimensionLength, DimensionStreamType}

// ParseDimension maps a query parameter name to its Dimension.
func ParseDimension(s string) (Dimension, error) {
	for _, d := range Dimensions {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDimension, s)
}

// Set is a set of selected labels. A nil or empty set means "no constraint".
type Set map[string]struct{}

// NewSet builds a set holding labels.
func NewSet(labels ...string) Set {
	s := make(Set, len(labels))
	for _, l := range labels {
		s[l] = struct{}{}
	}
	return s
}

func (s Set) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// Sorted returns the labels in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func (s Set) clone() Set {
	out := make(Set, len(s))
	for l := range s {
		out[l] = struct{}{}
	}
	return out
}

// Selection holds the selected labels per dimension. Within a dimension the
// labels are OR-ed; dimensions are AND-ed together.
type Selection struct {
	Difficulty Set
	Distance   Set
	Length     Set
	StreamType Set
}

// NewSelection builds a selection from raw label lists, e.g. repeated query parameters.
func NewSelection(difficulty, distance, length, streamType []string) Selection {
	return Selection{
		Difficulty: NewSet(difficulty...),
		Distance:   NewSet(distance...),
		Length:     NewSet(length...),
		StreamType: NewSet(streamType...),
	}
}

// Get returns the set for a dimension.
func (s Selection) Get(d Dimension) Set {
	switch d {
	case DimensionDifficulty:
		return s.Difficulty
	case DimensionDistance:
		return s.Distance
	case DimensionLength:
		return s.Length
	case DimensionStreamType:
		return s.StreamType
	}
	return nil
}

// Toggle adds label to the dimension when absent and removes it when present.
func (s *Selection) Toggle(d Dimension, label string) error {
	ptr, err := s.setFor(d)
	if err != nil {
		return err
	}
	if *ptr == nil {
		*ptr = Set{}
	}
	if (*ptr).Has(label) {
		delete(*ptr, label)
	} else {
		(*ptr)[label] = struct{}{}
	}
	return nil
}

func (s *Selection) setFor(d Dimension) (*Set, error) {
	switch d {
	case DimensionDifficulty:
		return &s.Difficulty, nil
	case DimensionDistance:
		return &s.Distance, nil
	case DimensionLength:
		return &s.Length, nil
	case DimensionStreamType:
		return &s.StreamType, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, d)
}

// Empty reports whether no dimension constrains anything.
func (s Selection) Empty() bool {
	return len(s.Difficulty) == 0 && len(s.Distance) == 0 && len(s.Length) == 0 && len(s.StreamType) == 0
}

// Clone returns a deep copy.
func (s Selection) Clone() Selection {
	return Selection{
		Difficulty: s.Difficulty.clone(),
		Distance:   s.Distance.clone(),
		Length:     s.Length.clone(),
		StreamType: s.StreamType.clone(),
	}
}
