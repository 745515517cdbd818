package prediction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/opendensity/density/core/logger"
	"github.com/opendensity/density/core/model"
	"github.com/opendensity/density/core/occupancy"
)

// Predictor produces a labeled occupancy series over caller-supplied target
// instants. It is the seam between the renderer and the concrete estimation
// backend; alternative strategies substitute here without touching callers.
type Predictor interface {
	Predict(ctx context.Context, floor string, targets model.TimeIndex) (model.Series, error)
}

// HistoricalPredictor implements Predictor over an occupancy source using
// historical means. Every call re-reads the full table; there is no cache.
// That is fine at the dump volumes this serves, and it keeps predictions
// consistent with the store without invalidation logic.
type HistoricalPredictor struct {
	source occupancy.Source
	log    logger.Logger
}

// NewHistoricalPredictor wires a predictor to its occupancy source. A nil
// logger disables logging.
func NewHistoricalPredictor(source occupancy.Source, log logger.Logger) *HistoricalPredictor {
	if log == nil {
		log = logger.Nop{}
	}
	return &HistoricalPredictor{source: source, log: log}
}

// Predict loads the table, estimates one mean per target and zips the result
// into a series labeled with the floor name.
func (p *HistoricalPredictor) Predict(ctx context.Context, floor string, targets model.TimeIndex) (model.Series, error) {
	reqID := uuid.NewString()
	p.log.Debugw("prediction requested", map[string]any{
		"request_id": reqID,
		"floor":      floor,
		"targets":    len(targets),
	})

	table, err := p.source.Load(ctx)
	if err != nil {
		return model.Series{}, fmt.Errorf("load occupancy: %w", err)
	}
	means, err := HistoricalMeans(table, floor, targets)
	if err != nil {
		p.log.Debugw("prediction failed", map[string]any{"request_id": reqID, "error": err.Error()})
		return model.Series{}, err
	}
	return model.NewSeries(floor, targets, means)
}
