package metrics

import (
	"context"
	"errors"
	"time"

	coremetrics "github.com/opendensity/density/core/metrics"
	"github.com/opendensity/density/core/model"
	"github.com/opendensity/density/core/occupancy"
	"github.com/opendensity/density/core/prediction"
)

// MeasuredPredictor wraps a Predictor and records an event per call. The
// wrapped predictor's results and errors pass through untouched.
type MeasuredPredictor struct {
	inner prediction.Predictor
	sink  coremetrics.Sink
}

// NewMeasuredPredictor instruments the given predictor. A nil sink records
// nothing.
func NewMeasuredPredictor(inner prediction.Predictor, sink coremetrics.Sink) *MeasuredPredictor {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &MeasuredPredictor{inner: inner, sink: sink}
}

// Predict delegates and records the outcome.
func (p *MeasuredPredictor) Predict(ctx context.Context, floor string, targets model.TimeIndex) (model.Series, error) {
	start := time.Now()
	series, err := p.inner.Predict(ctx, floor, targets)
	_ = p.sink.RecordPrediction(coremetrics.PredictionEvent{
		Floor:    floor,
		Points:   len(targets),
		Duration: time.Since(start),
		Outcome:  outcome(err),
		Time:     start,
	})
	return series, err
}

func outcome(err error) string {
	var noHist *prediction.NoHistoryError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &noHist):
		return "no_history"
	case errors.Is(err, occupancy.ErrUnknownFloor):
		return "unknown_floor"
	default:
		return "failed"
	}
}
