package model

import (
	"fmt"
	"time"
)

// TimeIndex is an ordered sequence of target instants with no duplicates.
// Prediction targets are expected to sit on the same fixed-step grid as the
// historical dumps (15 minutes in the reference deployment), since history
// lookups match time of day exactly.
type TimeIndex []time.Time

// NewTimeIndex validates instants and returns them as a TimeIndex.
func NewTimeIndex(instants []time.Time) (TimeIndex, error) {
	idx := TimeIndex(instants)
	if err := idx.Validate(); err != nil {
		return nil, err
	}
	return idx, nil
}

// FixedIndex builds a TimeIndex of n instants starting at start, each step
// apart. It panics if step is not positive or n is negative, since both are
// programming errors rather than runtime conditions.
func FixedIndex(start time.Time, step time.Duration, n int) TimeIndex {
	if step <= 0 {
		panic("model: fixed index step must be positive")
	}
	if n < 0 {
		panic("model: fixed index length must be non-negative")
	}
	idx := make(TimeIndex, n)
	for i := range idx {
		idx[i] = start.Add(time.Duration(i) * step)
	}
	return idx
}

// Validate rejects unsorted or duplicated instants.
func (idx TimeIndex) Validate() error {
	for i := 1; i < len(idx); i++ {
		if !idx[i].After(idx[i-1]) {
			return fmt.Errorf("time index not strictly increasing at position %d (%s then %s)",
				i, idx[i-1].Format(time.RFC3339), idx[i].Format(time.RFC3339))
		}
	}
	return nil
}

// Last returns the final instant. It panics on an empty index.
func (idx TimeIndex) Last() time.Time {
	return idx[len(idx)-1]
}
