package models

import (
	"math"
	"time"
)

// HourlyObservation is one provider sample. Float fields use NaN for
// "no sample"; zero is a legitimate measurement and never means absent.
// WeatherCode is -1 when absent.
type HourlyObservation struct {
	Time        time.Time
	Temperature float64 // °C at 2m
	WindSpeed   float64 // km/h sustained at 10m
	WindGust    float64 // km/h at 10m
	WindDir     float64 // degrees, meteorological (blowing from), 0=N
	Humidity    float64 // % relative at 2m
	Pressure    float64 // hPa at mean sea level
	Visibility  float64 // metres
	Rain        float64 // mm
	Showers     float64 // mm
	WeatherCode int     // WMO code 0-99
}

// DailySummary is one local calendar day reduced from its hourly samples.
// Built once per refresh cycle and never mutated afterwards.
type DailySummary struct {
	Date            string  `json:"date"` // YYYY-MM-DD, local
	TempMax         float64 `json:"temperature_2m_max"`
	TempMin         float64 `json:"temperature_2m_min"`
	WindSpeedMax    float64 `json:"wind_speed_10m_max"`
	WindGustMax     float64 `json:"wind_gusts_10m_max"`
	WindDirDominant float64 `json:"wind_direction_10m_dominant"`
	PressureMean    float64 `json:"surface_pressure"`
	WeatherCode     int     `json:"weather_code"`

	Analysis *DayAnalysis `json:"analysis,omitempty"`
}

// DayAnalysis is the derived per-day picture: wind character, comfort
// metrics, intra-day windows and the best hour per day part. Commentary
// fields are reason codes for the presentation layer, not prose.
type DayAnalysis struct {
	MeanWindDir      float64   `json:"mean_wind_dir"`
	WindName         string    `json:"wind_name"`
	DirVariability   float64   `json:"dir_variability"`
	MeanWindSpeed    float64   `json:"mean_wind_speed"`
	PeakGust         float64   `json:"peak_gust"`
	PeakGustTime     time.Time `json:"peak_gust_time"`
	SunnyHours       int       `json:"sunny_hours"`
	MeanVisibility   float64   `json:"mean_visibility"`
	MeanHumidity     float64   `json:"mean_humidity"`
	ThermalAmplitude float64   `json:"thermal_amplitude"`

	Windows     []DayWindow     `json:"windows"`
	BestPeriods []DayPeriodBest `json:"best_periods"`

	WindComment     string `json:"wind_comment"`
	ComfortComment  string `json:"comfort_comment"`
	OverviewComment string `json:"overview_comment"`
}

// Level is the 5-step sailing suitability rating.
type Level string

const (
	LevelExcellent Level = "excellent"
	LevelGood      Level = "good"
	LevelModerate  Level = "moderate"
	LevelDifficult Level = "difficult"
	LevelDangerous Level = "dangerous"
)

// Severity is the explicit total order over levels: excellent(0) is the
// least severe, dangerous(4) the most. Unknown levels sort last.
func (l Level) Severity() int {
	switch l {
	case LevelExcellent:
		return 0
	case LevelGood:
		return 1
	case LevelModerate:
		return 2
	case LevelDifficult:
		return 3
	case LevelDangerous:
		return 4
	}
	return 5
}

// DayWindow is a maximal run of consecutive observed hours sharing one
// level. End is exclusive: the start of the next differing hour, or the
// last in-span hour for the closing window.
type DayWindow struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Level  Level     `json:"level"`
	Reason string    `json:"reason"`
}

// DayPart is one of the three fixed local-time sub-ranges used for "best
// time to sail" picks.
type DayPart string

const (
	PartMorning   DayPart = "morning"   // 06-12
	PartAfternoon DayPart = "afternoon" // 12-18
	PartEvening   DayPart = "evening"   // 18-22
)

// DayPeriodBest reports the least severe classified hour within a day part.
type DayPeriodBest struct {
	Part   DayPart   `json:"part"`
	Hour   time.Time `json:"hour"`
	Level  Level     `json:"level"`
	Reason string    `json:"reason"`
}

// Unavailable is the sentinel for a metric with no samples.
func Unavailable() float64 { return math.NaN() }

// Available reports whether v carries a real measurement.
func Available(v float64) bool { return !math.IsNaN(v) }
