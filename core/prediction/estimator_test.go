package prediction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendensity/density/core/model"
	"github.com/opendensity/density/core/occupancy"
)

// mondayNine is a Monday.
var mondayNine = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

const week = 7 * 24 * time.Hour

func butlerRec(ts time.Time, count int64) model.Record {
	return model.Record{
		DumpTime:    ts,
		GroupID:     152,
		GroupName:   "Butler Library 2",
		ParentID:    146,
		ParentName:  "Butler",
		ClientCount: count,
	}
}

func butlerTable(t *testing.T, records ...model.Record) *occupancy.Table {
	t.Helper()
	table, err := occupancy.New(records)
	require.NoError(t, err)
	return table
}

func TestHistoricalMeansAveragesAcrossWeeks(t *testing.T) {
	table := butlerTable(t,
		butlerRec(mondayNine, 10),
		butlerRec(mondayNine.Add(week), 20),
		butlerRec(mondayNine.Add(2*week), 30),
	)

	// A later Monday 09:00 hits the same bucket.
	target := mondayNine.Add(4 * week)
	means, err := HistoricalMeans(table, "Butler Library 2", model.TimeIndex{target})
	require.NoError(t, err)
	require.Len(t, means, 1)
	assert.Equal(t, 20.0, means[0])
}

func TestHistoricalMeansAlignment(t *testing.T) {
	table := butlerTable(t,
		butlerRec(mondayNine, 10),
		butlerRec(mondayNine.Add(15*time.Minute), 40),
	)

	targets := model.FixedIndex(mondayNine.Add(4*week), 15*time.Minute, 2)
	means, err := HistoricalMeans(table, "Butler Library 2", targets)
	require.NoError(t, err)
	require.Len(t, means, len(targets))
	assert.Equal(t, []float64{10, 40}, means, "position i must correspond to targets[i]")
}

func TestHistoricalMeansDeterministic(t *testing.T) {
	table := butlerTable(t,
		butlerRec(mondayNine, 10),
		butlerRec(mondayNine.Add(week), 25),
	)
	targets := model.TimeIndex{mondayNine.Add(4 * week)}

	first, err := HistoricalMeans(table, "Butler Library 2", targets)
	require.NoError(t, err)
	second, err := HistoricalMeans(table, "Butler Library 2", targets)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHistoricalMeansMissingBucketFailsWholeCall(t *testing.T) {
	table := butlerTable(t, butlerRec(mondayNine, 10))

	// First target matches, second (Tuesday) has no history at all.
	targets := model.TimeIndex{
		mondayNine.Add(4 * week),
		mondayNine.Add(4*week + 24*time.Hour),
	}
	means, err := HistoricalMeans(table, "Butler Library 2", targets)
	require.Error(t, err)
	assert.Nil(t, means, "no partial sequence on a history gap")

	var noHist *NoHistoryError
	require.ErrorAs(t, err, &noHist)
	assert.Equal(t, "Butler Library 2", noHist.Floor)
	assert.Equal(t, targets[1], noHist.At)
}

func TestHistoricalMeansExactTimeOfDayMatch(t *testing.T) {
	table := butlerTable(t, butlerRec(mondayNine, 10))

	// Same weekday, one minute off the sampling grid: no match.
	_, err := HistoricalMeans(table, "Butler Library 2",
		model.TimeIndex{mondayNine.Add(4*week + time.Minute)})
	var noHist *NoHistoryError
	assert.ErrorAs(t, err, &noHist)
}

func TestHistoricalMeansUnknownFloor(t *testing.T) {
	table := butlerTable(t, butlerRec(mondayNine, 10))
	_, err := HistoricalMeans(table, "Uris", model.TimeIndex{mondayNine})
	assert.ErrorIs(t, err, occupancy.ErrUnknownFloor)
}

func TestHistoricalMeansRejectsBadTargets(t *testing.T) {
	table := butlerTable(t, butlerRec(mondayNine, 10))
	_, err := HistoricalMeans(table, "Butler Library 2",
		model.TimeIndex{mondayNine, mondayNine})
	assert.Error(t, err, "duplicate targets must be rejected at the boundary")
}
