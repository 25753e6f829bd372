package models

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ForecastPoint is one predicted demand value with its uncertainty band.
type ForecastPoint struct {
	DS        time.Time `json:"ds"`
	YHat      float64   `json:"yhat"`
	YHatLower float64   `json:"yhat_lower"`
	YHatUpper float64   `json:"yhat_upper"`
}

// Timestamp layouts accepted for "ds". The backend serializes pandas
// timestamps in HTTP date form; the sample provider uses RFC 3339.
var dsLayouts = []string{
	time.RFC3339Nano,
	http.TimeFormat,
	time.RFC1123,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON accepts any of the known "ds" timestamp layouts.
func (p *ForecastPoint) UnmarshalJSON(data []byte) error {
	var raw struct {
		DS        string  `json:"ds"`
		YHat      float64 `json:"yhat"`
		YHatLower float64 `json:"yhat_lower"`
		YHatUpper float64 `json:"yhat_upper"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ds, err := parseDS(raw.DS)
	if err != nil {
		return err
	}
	*p = ForecastPoint{DS: ds, YHat: raw.YHat, YHatLower: raw.YHatLower, YHatUpper: raw.YHatUpper}
	return nil
}

func parseDS(s string) (time.Time, error) {
	for _, layout := range dsLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized forecast timestamp %q", s)
}

// Forecast is the response of the forecast predict endpoint.
type Forecast struct {
	Success bool            `json:"success"`
	Periods int             `json:"periods"`
	Points  []ForecastPoint `json:"forecast"`
	Message string          `json:"message,omitempty"`
}

// ForecastMetrics holds the model's error measures.
type ForecastMetrics struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
}

// TrainStatus is returned by the train endpoints of the backend.
type TrainStatus struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
