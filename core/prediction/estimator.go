package prediction

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/opendensity/density/core/model"
	"github.com/opendensity/density/core/occupancy"
)

// NoHistoryError reports a target instant with no matching historical
// (floor, weekday, time of day) bucket. The whole estimation call fails on
// the first such instant; no partial sequence is produced.
type NoHistoryError struct {
	Floor string
	At    time.Time
}

func (e *NoHistoryError) Error() string {
	return fmt.Sprintf("no history for floor %q at %s (%s %s)",
		e.Floor, e.At.Format(time.RFC3339), e.At.Weekday(), e.At.Format("15:04:05"))
}

// HistoricalMeans returns one mean client count per target instant,
// positionally aligned with targets. A target matches the historical records
// of the same floor whose dump time falls on the same weekday at exactly the
// same time of day.
func HistoricalMeans(table *occupancy.Table, floor string, targets model.TimeIndex) ([]float64, error) {
	if err := targets.Validate(); err != nil {
		return nil, fmt.Errorf("prediction targets: %w", err)
	}
	if !table.HasFloor(floor) {
		return nil, fmt.Errorf("floor %q: %w", floor, occupancy.ErrUnknownFloor)
	}

	means := make([]float64, len(targets))
	for i, at := range targets {
		counts, ok := table.Bucket(floor, at.Weekday(), occupancy.SecondOfDay(at))
		if !ok {
			return nil, &NoHistoryError{Floor: floor, At: at}
		}
		sample := make([]float64, len(counts))
		for j, c := range counts {
			sample[j] = float64(c)
		}
		means[i] = stat.Mean(sample, nil)
	}
	return means, nil
}
