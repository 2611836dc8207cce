package sailing

import (
	"math"

	"github.com/capagde/sailcast/internal/meteo"
	"github.com/capagde/sailcast/internal/models"
)

// Metrics is the single input shape for classification. Both call paths
// use it: a whole day supplies its maxima, an individual hour supplies its
// instantaneous values.
type Metrics struct {
	WindSpeed   float64 // km/h sustained
	WindGust    float64 // km/h
	WeatherCode int     // WMO code 0-99
	Temperature float64 // °C
}

// Condition is the outcome of classifying one Metrics set. It carries only
// enums and numbers; the presentation layer renders language from the
// reason and activity keys.
type Condition struct {
	Level         models.Level `json:"level"`
	Activity      string       `json:"activity"`
	Reason        string       `json:"reason"`
	Beaufort      meteo.Force  `json:"beaufort"`
	EffectiveWind float64      `json:"effective_wind"`
}

// Activity label keys.
const (
	ActivityStayInPort      = "activity.stay_in_port"
	ActivityExperiencedCrew = "activity.experienced_crew"
	ActivityCoastalSailing  = "activity.coastal_sailing"
	ActivityFullSail        = "activity.full_sail"
	ActivityDayCruise       = "activity.day_cruise"
	ActivityMotorCruise     = "activity.motor_cruise"
)

// Reason codes, the closed set the UI translates.
const (
	ReasonViolentGusts     = "reason.violent_gusts"
	ReasonGaleForceWind    = "reason.gale_force_wind"
	ReasonStrongWind       = "reason.strong_wind"
	ReasonHeavyGusts       = "reason.heavy_gusts"
	ReasonSquallRisk       = "reason.squall_risk"
	ReasonModerateWind     = "reason.moderate_wind"
	ReasonGustyBreeze      = "reason.gusty_breeze"
	ReasonPrecipitation    = "reason.precipitation"
	ReasonIdealBreeze      = "reason.ideal_breeze"
	ReasonFairSailing      = "reason.fair_sailing"
	ReasonLightAir         = "reason.light_air"
	ReasonSteadyConditions = "reason.steady_conditions"
	ReasonNoData           = "reason.no_data"
)

// squallCodes is the showers/squalls/thunderstorm WMO family.
var squallCodes = map[int]bool{80: true, 81: true, 82: true, 85: true, 86: true, 95: true, 96: true, 99: true}

// rainSnowCodes is the steady rain/snow WMO family.
var rainSnowCodes = map[int]bool{61: true, 63: true, 65: true, 71: true, 73: true, 75: true}

// clearCodes is clear sky through partly cloudy.
var clearCodes = map[int]bool{0: true, 1: true, 2: true}

// Classify rates one Metrics set on the 5-level scale via an ordered
// first-match cascade. Earlier rules dominate: an extreme gust or a
// thunderstorm code escalates severity no matter how mild the sustained
// wind looks.
func Classify(m Metrics) Condition {
	m = m.clamped()

	bft := meteo.Beaufort(m.WindSpeed)
	// Effective wind lets frequent strong gusts escalate severity even
	// when the sustained speed alone looks mild.
	effective := math.Max(m.WindSpeed, math.Round(0.7*m.WindGust))

	c := Condition{Beaufort: bft, EffectiveWind: effective}

	switch {
	case m.WindGust >= 80:
		c.Level, c.Activity, c.Reason = models.LevelDangerous, ActivityStayInPort, ReasonViolentGusts
	case bft.Scale >= 9:
		c.Level, c.Activity, c.Reason = models.LevelDangerous, ActivityStayInPort, ReasonGaleForceWind
	case bft.Scale >= 6:
		c.Level, c.Activity, c.Reason = models.LevelDifficult, ActivityExperiencedCrew, ReasonStrongWind
	case m.WindGust >= 70:
		c.Level, c.Activity, c.Reason = models.LevelDifficult, ActivityExperiencedCrew, ReasonHeavyGusts
	case squallCodes[m.WeatherCode]:
		c.Level, c.Activity, c.Reason = models.LevelDifficult, ActivityExperiencedCrew, ReasonSquallRisk
	case bft.Scale >= 4:
		c.Level, c.Activity, c.Reason = models.LevelModerate, ActivityCoastalSailing, ReasonModerateWind
	case effective >= 20 || m.WindGust >= 50:
		c.Level, c.Activity, c.Reason = models.LevelModerate, ActivityCoastalSailing, ReasonGustyBreeze
	case rainSnowCodes[m.WeatherCode]:
		c.Level, c.Activity, c.Reason = models.LevelModerate, ActivityCoastalSailing, ReasonPrecipitation
	case effective >= 6 && effective <= 14 && clearCodes[m.WeatherCode] && m.Temperature > 20:
		c.Level, c.Activity, c.Reason = models.LevelExcellent, ActivityFullSail, ReasonIdealBreeze
	case (effective >= 10 && effective <= 20 && m.Temperature > 14) ||
		(clearCodes[m.WeatherCode] && m.Temperature >= 18):
		c.Level, c.Activity, c.Reason = models.LevelGood, ActivityDayCruise, ReasonFairSailing
	case effective < 6 || bft.Scale <= 1:
		// Calm-weather leisure case: too little wind to sail properly.
		c.Level, c.Activity, c.Reason = models.LevelModerate, ActivityMotorCruise, ReasonLightAir
	default:
		c.Level, c.Activity, c.Reason = models.LevelGood, ActivityDayCruise, ReasonSteadyConditions
	}

	return c
}

// clamped pulls out-of-contract values back into range; the cascade has no
// defined behavior for negative winds or malformed codes.
func (m Metrics) clamped() Metrics {
	if m.WindSpeed < 0 || math.IsNaN(m.WindSpeed) {
		m.WindSpeed = 0
	}
	if m.WindGust < 0 || math.IsNaN(m.WindGust) {
		m.WindGust = 0
	}
	if m.WeatherCode < 0 || m.WeatherCode > 99 {
		m.WeatherCode = 0
	}
	if math.IsNaN(m.Temperature) {
		m.Temperature = 0
	}
	return m
}

// ColorBand maps a Beaufort scale to the 5-band presentation severity.
// Color is a function of Beaufort alone and deliberately independent of the
// suitability level, which can diverge (a calm thunderstorm day is
// difficult yet color-calm).
func ColorBand(scale int) string {
	switch {
	case scale <= 1:
		return "band.calm"
	case scale <= 3:
		return "band.light"
	case scale <= 5:
		return "band.fresh"
	case scale <= 7:
		return "band.strong"
	default:
		return "band.gale"
	}
}

// DailyMetrics builds the classifier input from a day's summary maxima.
func DailyMetrics(s models.DailySummary) Metrics {
	return Metrics{
		WindSpeed:   s.WindSpeedMax,
		WindGust:    s.WindGustMax,
		WeatherCode: s.WeatherCode,
		Temperature: s.TempMax,
	}
}

// HourlyMetrics builds the classifier input from one hour's instantaneous
// values.
func HourlyMetrics(h models.HourlyObservation) Metrics {
	return Metrics{
		WindSpeed:   h.WindSpeed,
		WindGust:    h.WindGust,
		WeatherCode: h.WeatherCode,
		Temperature: h.Temperature,
	}
}
