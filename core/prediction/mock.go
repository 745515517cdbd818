package prediction

import (
	"context"

	"github.com/opendensity/density/core/model"
)

// MockPredictor returns canned values per floor, aligned to whatever targets
// it is called with. Floors without a configured value predict zero.
type MockPredictor struct {
	Values map[string]float64
	Err    error

	// LastFloor and LastTargets record the most recent call for assertions.
	LastFloor   string
	LastTargets model.TimeIndex
}

// Predict returns a constant series for the floor, or the configured error.
func (m *MockPredictor) Predict(_ context.Context, floor string, targets model.TimeIndex) (model.Series, error) {
	m.LastFloor = floor
	m.LastTargets = targets
	if m.Err != nil {
		return model.Series{}, m.Err
	}
	values := make([]float64, len(targets))
	if m.Values != nil {
		for i := range values {
			values[i] = m.Values[floor]
		}
	}
	return model.NewSeries(floor, targets, values)
}
