package models

import (
	"encoding/json"
	"math"
	"time"
)

// The NaN sentinel is not representable in JSON, so summaries and analyses
// marshal unavailable metrics as null and read null back as NaN.

type dailySummaryJSON struct {
	Date            string       `json:"date"`
	TempMax         *float64     `json:"temperature_2m_max"`
	TempMin         *float64     `json:"temperature_2m_min"`
	WindSpeedMax    *float64     `json:"wind_speed_10m_max"`
	WindGustMax     *float64     `json:"wind_gusts_10m_max"`
	WindDirDominant *float64     `json:"wind_direction_10m_dominant"`
	PressureMean    *float64     `json:"surface_pressure"`
	WeatherCode     *int         `json:"weather_code"`
	Analysis        *DayAnalysis `json:"analysis,omitempty"`
}

func (d DailySummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(dailySummaryJSON{
		Date:            d.Date,
		TempMax:         optFloat(d.TempMax),
		TempMin:         optFloat(d.TempMin),
		WindSpeedMax:    optFloat(d.WindSpeedMax),
		WindGustMax:     optFloat(d.WindGustMax),
		WindDirDominant: optFloat(d.WindDirDominant),
		PressureMean:    optFloat(d.PressureMean),
		WeatherCode:     optCode(d.WeatherCode),
		Analysis:        d.Analysis,
	})
}

func (d *DailySummary) UnmarshalJSON(b []byte) error {
	var raw dailySummaryJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	d.Date = raw.Date
	d.TempMax = fromOptFloat(raw.TempMax)
	d.TempMin = fromOptFloat(raw.TempMin)
	d.WindSpeedMax = fromOptFloat(raw.WindSpeedMax)
	d.WindGustMax = fromOptFloat(raw.WindGustMax)
	d.WindDirDominant = fromOptFloat(raw.WindDirDominant)
	d.PressureMean = fromOptFloat(raw.PressureMean)
	d.WeatherCode = fromOptCode(raw.WeatherCode)
	d.Analysis = raw.Analysis
	return nil
}

type dayAnalysisJSON struct {
	MeanWindDir      *float64        `json:"mean_wind_dir"`
	WindName         string          `json:"wind_name"`
	DirVariability   *float64        `json:"dir_variability"`
	MeanWindSpeed    *float64        `json:"mean_wind_speed"`
	PeakGust         *float64        `json:"peak_gust"`
	PeakGustTime     time.Time       `json:"peak_gust_time"`
	SunnyHours       int             `json:"sunny_hours"`
	MeanVisibility   *float64        `json:"mean_visibility"`
	MeanHumidity     *float64        `json:"mean_humidity"`
	ThermalAmplitude *float64        `json:"thermal_amplitude"`
	Windows          []DayWindow     `json:"windows"`
	BestPeriods      []DayPeriodBest `json:"best_periods"`
	WindComment      string          `json:"wind_comment"`
	ComfortComment   string          `json:"comfort_comment"`
	OverviewComment  string          `json:"overview_comment"`
}

func (a DayAnalysis) MarshalJSON() ([]byte, error) {
	return json.Marshal(dayAnalysisJSON{
		MeanWindDir:      optFloat(a.MeanWindDir),
		WindName:         a.WindName,
		DirVariability:   optFloat(a.DirVariability),
		MeanWindSpeed:    optFloat(a.MeanWindSpeed),
		PeakGust:         optFloat(a.PeakGust),
		PeakGustTime:     a.PeakGustTime,
		SunnyHours:       a.SunnyHours,
		MeanVisibility:   optFloat(a.MeanVisibility),
		MeanHumidity:     optFloat(a.MeanHumidity),
		ThermalAmplitude: optFloat(a.ThermalAmplitude),
		Windows:          a.Windows,
		BestPeriods:      a.BestPeriods,
		WindComment:      a.WindComment,
		ComfortComment:   a.ComfortComment,
		OverviewComment:  a.OverviewComment,
	})
}

func (a *DayAnalysis) UnmarshalJSON(b []byte) error {
	var raw dayAnalysisJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	a.MeanWindDir = fromOptFloat(raw.MeanWindDir)
	a.WindName = raw.WindName
	a.DirVariability = fromOptFloat(raw.DirVariability)
	a.MeanWindSpeed = fromOptFloat(raw.MeanWindSpeed)
	a.PeakGust = fromOptFloat(raw.PeakGust)
	a.PeakGustTime = raw.PeakGustTime
	a.SunnyHours = raw.SunnyHours
	a.MeanVisibility = fromOptFloat(raw.MeanVisibility)
	a.MeanHumidity = fromOptFloat(raw.MeanHumidity)
	a.ThermalAmplitude = fromOptFloat(raw.ThermalAmplitude)
	a.Windows = raw.Windows
	a.BestPeriods = raw.BestPeriods
	a.WindComment = raw.WindComment
	a.ComfortComment = raw.ComfortComment
	a.OverviewComment = raw.OverviewComment
	return nil
}

func optFloat(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func fromOptFloat(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func optCode(code int) *int {
	if code < 0 {
		return nil
	}
	return &code
}

func fromOptCode(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}
