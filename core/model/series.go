package model

import "fmt"

// Series is a labeled time-indexed sequence of occupancy values. The name
// identifies the floor the values belong to. Index and Values are parallel
// slices; a Series is never mutated after construction.
type Series struct {
	Name   string
	Index  TimeIndex
	Values []float64
}

// NewSeries builds a Series after checking that the index is valid and
// aligned with the values.
func NewSeries(name string, index TimeIndex, values []float64) (Series, error) {
	if name == "" {
		return Series{}, fmt.Errorf("series name is empty")
	}
	if err := index.Validate(); err != nil {
		return Series{}, fmt.Errorf("series %q: %w", name, err)
	}
	if len(index) != len(values) {
		return Series{}, fmt.Errorf("series %q: index has %d instants but %d values",
			name, len(index), len(values))
	}
	return Series{Name: name, Index: index, Values: values}, nil
}

// Len returns the number of points in the series.
func (s Series) Len() int { return len(s.Index) }

// Validate re-checks the series invariants, for series built by hand.
func (s Series) Validate() error {
	_, err := NewSeries(s.Name, s.Index, s.Values)
	return err
}
