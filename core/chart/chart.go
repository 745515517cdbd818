// Package chart assembles the observed-versus-predicted occupancy
// comparison. It derives the future horizon from the observed series, asks a
// Predictor for the matching estimates and hands both series to a Renderer.
// How the chart looks is entirely the renderer's concern.
package chart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/opendensity/density/core/model"
	"github.com/opendensity/density/core/prediction"
)

// ErrEmptyObserved is returned when the observed series has no points, since
// there is then no instant to anchor the future horizon on.
var ErrEmptyObserved = errors.New("observed series is empty")

// Horizon is the prediction lookahead policy: how many instants to predict
// and how far apart they are. The zero value means the reference policy of
// 24 hours at 15-minute resolution.
type Horizon struct {
	Points int
	Step   time.Duration
}

// DefaultHorizon returns the reference lookahead of 96 points 15 minutes
// apart.
func DefaultHorizon() Horizon {
	return Horizon{Points: 96, Step: 15 * time.Minute}
}

func (h Horizon) withDefaults() Horizon {
	d := DefaultHorizon()
	if h.Points <= 0 {
		h.Points = d.Points
	}
	if h.Step <= 0 {
		h.Step = d.Step
	}
	return h
}

// FutureIndex returns the horizon's target instants anchored strictly after
// last: the first instant is one step past it.
func (h Horizon) FutureIndex(last time.Time) model.TimeIndex {
	h = h.withDefaults()
	return model.FixedIndex(last.Add(h.Step), h.Step, h.Points)
}

// Comparison pairs a floor's observed history with its predicted future on
// one time axis. The predicted index begins strictly after the observed one
// ends.
type Comparison struct {
	Observed  model.Series
	Predicted model.Series
}

// Renderer draws a comparison into an opaque chart handle. The core only
// guarantees that both series are supplied aligned; styling is up to the
// implementation, as long as the two lines stay distinguishable.
type Renderer interface {
	Render(c *Comparison) (string, error)
}

// BuildComparison derives the future index from the observed series' last
// instant and obtains predictions for it. The observed series' name is the
// floor predicted for.
func BuildComparison(ctx context.Context, observed model.Series, p prediction.Predictor, h Horizon) (*Comparison, error) {
	if observed.Len() == 0 {
		return nil, ErrEmptyObserved
	}
	if err := observed.Validate(); err != nil {
		return nil, fmt.Errorf("observed series: %w", err)
	}

	future := h.FutureIndex(observed.Index.Last())
	predicted, err := p.Predict(ctx, observed.Name, future)
	if err != nil {
		return nil, fmt.Errorf("predict %q: %w", observed.Name, err)
	}
	return &Comparison{Observed: observed, Predicted: predicted}, nil
}
