package chart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendensity/density/core/model"
	"github.com/opendensity/density/core/prediction"
)

var nineAM = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

func observedSeries(t *testing.T, n int) model.Series {
	t.Helper()
	idx := model.FixedIndex(nineAM, 15*time.Minute, n)
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(10 + i)
	}
	s, err := model.NewSeries("Butler Library 2", idx, values)
	require.NoError(t, err)
	return s
}

func TestBuildComparisonDerivesFutureIndex(t *testing.T) {
	observed := observedSeries(t, 4)
	mock := &prediction.MockPredictor{Values: map[string]float64{"Butler Library 2": 5}}

	c, err := BuildComparison(context.Background(), observed, mock, Horizon{})
	require.NoError(t, err)

	require.Len(t, mock.LastTargets, 96, "default horizon is 96 points")
	last := observed.Index.Last()
	assert.True(t, mock.LastTargets[0].After(last), "future index starts strictly after the last observation")
	assert.Equal(t, last.Add(15*time.Minute), mock.LastTargets[0])
	for i := 1; i < len(mock.LastTargets); i++ {
		assert.Equal(t, 15*time.Minute, mock.LastTargets[i].Sub(mock.LastTargets[i-1]))
	}

	assert.Equal(t, observed, c.Observed)
	assert.Equal(t, mock.LastTargets, c.Predicted.Index)
	assert.Equal(t, "Butler Library 2", mock.LastFloor)
}

func TestBuildComparisonCustomHorizon(t *testing.T) {
	observed := observedSeries(t, 2)
	mock := &prediction.MockPredictor{}

	_, err := BuildComparison(context.Background(), observed, mock, Horizon{Points: 4, Step: time.Hour})
	require.NoError(t, err)
	require.Len(t, mock.LastTargets, 4)
	assert.Equal(t, observed.Index.Last().Add(time.Hour), mock.LastTargets[0])
}

func TestBuildComparisonRejectsEmptyObserved(t *testing.T) {
	mock := &prediction.MockPredictor{}
	_, err := BuildComparison(context.Background(), model.Series{Name: "Butler Library 2"}, mock, Horizon{})
	assert.ErrorIs(t, err, ErrEmptyObserved)
	assert.Nil(t, mock.LastTargets, "predictor must not be called without an anchor")
}

func TestBuildComparisonPropagatesPredictorFailure(t *testing.T) {
	boom := errors.New("no history")
	mock := &prediction.MockPredictor{Err: boom}
	_, err := BuildComparison(context.Background(), observedSeries(t, 2), mock, Horizon{})
	assert.ErrorIs(t, err, boom)
}

func TestBuildComparisonRejectsCorruptObserved(t *testing.T) {
	bad := model.Series{
		Name:   "Butler Library 2",
		Index:  model.TimeIndex{nineAM, nineAM},
		Values: []float64{1, 2},
	}
	_, err := BuildComparison(context.Background(), bad, &prediction.MockPredictor{}, Horizon{})
	assert.Error(t, err)
}
