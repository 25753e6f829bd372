package forecast

import (
	"time"

	"github.com/HerbHall/renewhub/pkg/models"
)

// LabelLayout formats the x-axis labels, e.g. "Mar 5, 14:00".
const LabelLayout = "Jan 2, 15:04"

// Chart holds the series handed to the chart widget.
type Chart struct {
	Labels []string  `json:"labels"`
	YHat   []float64 `json:"yhat"`
	Lower  []float64 `json:"lower"`
	Upper  []float64 `json:"upper"`
}

// Empty reports whether there is nothing to draw.
func (c Chart) Empty() bool { return len(c.Labels) == 0 }

// BuildChart converts forecast points into parallel series.
func BuildChart(points []models.ForecastPoint) Chart {
	c := Chart{
		Labels: make([]string, 0, len(points)),
		YHat:   make([]float64, 0, len(points)),
		Lower:  make([]float64, 0, len(points)),
		Upper:  make([]float64, 0, len(points)),
	}
	for _, p := range points {
		c.Labels = append(c.Labels, p.DS.Format(LabelLayout))
		c.YHat = append(c.YHat, p.YHat)
		c.Lower = append(c.Lower, p.YHatLower)
		c.Upper = append(c.Upper, p.YHatUpper)
	}
	return c
}

// Summary describes the predicted demand over the horizon.
type Summary struct {
	Peak      float64   `json:"peak"`
	PeakAt    time.Time `json:"peak_at"`
	Minimum   float64   `json:"minimum"`
	MinimumAt time.Time `json:"minimum_at"`
	Average   float64   `json:"average"`
}

// Summarize finds the peak, minimum and mean of yhat. The zero Summary is
// returned for no points.
func Summarize(points []models.ForecastPoint) Summary {
	if len(points) == 0 {
		return Summary{}
	}
	s := Summary{
		Peak:      points[0].YHat,
		PeakAt:    points[0].DS,
		Minimum:   points[0].YHat,
		MinimumAt: points[0].DS,
	}
	var total float64
	for _, p := range points {
		total += p.YHat
		if p.YHat > s.Peak {
			s.Peak, s.PeakAt = p.YHat, p.DS
		}
		if p.YHat < s.Minimum {
			s.Minimum, s.MinimumAt = p.YHat, p.DS
		}
	}
	s.Average = total / float64(len(points))
	return s
}
