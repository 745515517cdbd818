// Package chart renders occupancy comparisons as terminal line charts.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	corechart "github.com/opendensity/density/core/chart"
)

var (
	observedColor  = lipgloss.Color("#1e90ff") // dodgerblue, as the reference plot
	predictedColor = lipgloss.Color("#dc143c") // crimson
)

// AsciiRenderer draws both series of a comparison on one shared time axis.
// The observed line occupies the left part of the axis and the predicted
// line continues where it ends; each series is blanked out of the other's
// region so the two stay visually distinct.
type AsciiRenderer struct {
	Width  int
	Height int
}

// NewAsciiRenderer returns a renderer with the given plot dimensions.
// Non-positive dimensions fall back to a readable default.
func NewAsciiRenderer(width, height int) *AsciiRenderer {
	if width < 20 {
		width = 80
	}
	if height < 3 {
		height = 12
	}
	return &AsciiRenderer{Width: width, Height: height}
}

// Render implements corechart.Renderer.
func (r *AsciiRenderer) Render(c *corechart.Comparison) (string, error) {
	if c == nil || c.Observed.Len() == 0 {
		return "", corechart.ErrEmptyObserved
	}
	if c.Predicted.Len() == 0 {
		return "", fmt.Errorf("comparison has no predicted points")
	}

	total := c.Observed.Len() + c.Predicted.Len()
	observed := make([]float64, total)
	predicted := make([]float64, total)
	for i := range observed {
		observed[i] = math.NaN()
		predicted[i] = math.NaN()
	}
	copy(observed, c.Observed.Values)
	copy(predicted[c.Observed.Len():], c.Predicted.Values)

	first := c.Observed.Index[0]
	last := c.Predicted.Index.Last()
	caption := fmt.Sprintf("%s occupancy, %s to %s", c.Observed.Name,
		first.Format("Mon 15:04"), last.Format("Mon 15:04"))

	graph := asciigraph.PlotMany([][]float64{observed, predicted},
		asciigraph.Height(r.Height),
		asciigraph.Width(r.Width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(
			asciigraph.DodgerBlue,
			asciigraph.Crimson,
		),
	)

	legend := strings.Join([]string{
		lipgloss.NewStyle().Foreground(observedColor).Render("■") + " observed",
		lipgloss.NewStyle().Foreground(predictedColor).Render("■") + " predicted",
	}, "  ")

	return graph + "\n" + legend + "\n", nil
}
