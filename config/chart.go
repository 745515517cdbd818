package config

import (
	"fmt"
	"time"

	"github.com/opendensity/density/core/chart"
)

// ChartConfig controls the comparison chart: how much history to show, how
// far ahead to predict and the plot dimensions.
type ChartConfig struct {
	// HorizonPoints and StepMinutes define the prediction lookahead.
	HorizonPoints int `json:"horizon_points"`
	StepMinutes   int `json:"step_minutes"`
	// WindowHours bounds the observed history drawn before the prediction.
	WindowHours int `json:"window_hours"`
	Width       int `json:"width"`
	Height      int `json:"height"`
}

// SetDefaults applies the reference policy of 24 hours lookahead at
// 15-minute resolution, preceded by 24 hours of history.
func (c *ChartConfig) SetDefaults() {
	if c.HorizonPoints == 0 {
		c.HorizonPoints = 96
	}
	if c.StepMinutes == 0 {
		c.StepMinutes = 15
	}
	if c.WindowHours == 0 {
		c.WindowHours = 24
	}
	if c.Width == 0 {
		c.Width = 100
	}
	if c.Height == 0 {
		c.Height = 15
	}
}

// Validate checks the lookahead policy is usable.
func (c ChartConfig) Validate() error {
	if c.HorizonPoints < 1 {
		return fmt.Errorf("horizon_points must be at least 1")
	}
	if c.StepMinutes < 1 {
		return fmt.Errorf("step_minutes must be at least 1")
	}
	if c.WindowHours < 1 {
		return fmt.Errorf("window_hours must be at least 1")
	}
	return nil
}

// Horizon converts the chart settings into the core lookahead policy.
func (c ChartConfig) Horizon() chart.Horizon {
	return chart.Horizon{
		Points: c.HorizonPoints,
		Step:   time.Duration(c.StepMinutes) * time.Minute,
	}
}
