package sailing

import (
	"math"

	"github.com/capagde/sailcast/internal/meteo"
	"github.com/capagde/sailcast/internal/models"
)

// Commentary reason codes. Like the classifier's reasons these are lookup
// keys, not prose.
const (
	CommentWindStrong   = "comment.wind_strong"
	CommentWindFresh    = "comment.wind_fresh"
	CommentWindModerate = "comment.wind_moderate"
	CommentWindLight    = "comment.wind_light"
	CommentWindShifty   = "comment.wind_shifty"

	CommentHumid       = "comment.humid"
	CommentLargeSwing  = "comment.large_temp_swing"
	CommentPoorVis     = "comment.poor_visibility"
	CommentComfortable = "comment.comfortable"

	CommentMostlySunny = "comment.mostly_sunny"
	CommentSomeSun     = "comment.some_sun"
	CommentOvercast    = "comment.overcast"
)

// AnalyzeDay derives the full DayAnalysis for one day's hourly samples:
// wind character, comfort statistics, intra-day windows and day-part
// bests. Returns nil for an empty day.
func AnalyzeDay(hours []models.HourlyObservation) *models.DayAnalysis {
	if len(hours) == 0 {
		return nil
	}

	var dirs, speeds, vis, hum, temps []float64
	for _, h := range hours {
		if models.Available(h.WindDir) {
			dirs = append(dirs, h.WindDir)
		}
		if models.Available(h.WindSpeed) {
			speeds = append(speeds, h.WindSpeed)
		}
		if models.Available(h.Visibility) {
			vis = append(vis, h.Visibility)
		}
		if models.Available(h.Humidity) {
			hum = append(hum, h.Humidity)
		}
		if models.Available(h.Temperature) {
			temps = append(temps, h.Temperature)
		}
	}

	meanDir := meteo.CircularMean(dirs)
	peakGust, peakAt := meteo.PeakGust(hours)

	a := &models.DayAnalysis{
		MeanWindDir:      meanDir,
		WindName:         meteo.WindName(meanDir),
		DirVariability:   meteo.CircularStdDev(dirs, meanDir),
		MeanWindSpeed:    meteo.Mean(speeds),
		PeakGust:         peakGust,
		PeakGustTime:     peakAt,
		SunnyHours:       meteo.SunnyHours(hours),
		MeanVisibility:   meteo.Mean(vis),
		MeanHumidity:     meteo.Mean(hum),
		ThermalAmplitude: amplitude(temps),
		Windows:          SegmentDay(hours),
		BestPeriods:      BestPeriods(hours),
	}

	a.WindComment = windComment(a)
	a.ComfortComment = comfortComment(a)
	a.OverviewComment = overviewComment(a)

	return a
}

func amplitude(temps []float64) float64 {
	if len(temps) == 0 {
		return math.NaN()
	}
	lo, hi := temps[0], temps[0]
	for _, t := range temps[1:] {
		if t < lo {
			lo = t
		}
		if t > hi {
			hi = t
		}
	}
	return hi - lo
}

func windComment(a *models.DayAnalysis) string {
	switch {
	case a.MeanWindSpeed >= 30 || a.PeakGust >= 60:
		return CommentWindStrong
	case a.DirVariability >= 60:
		return CommentWindShifty
	case a.MeanWindSpeed >= 15:
		return CommentWindFresh
	case a.MeanWindSpeed < 6:
		return CommentWindLight
	default:
		return CommentWindModerate
	}
}

func comfortComment(a *models.DayAnalysis) string {
	switch {
	case a.MeanVisibility < 5000: // NaN compares false, falls through
		return CommentPoorVis
	case a.MeanHumidity > 80:
		return CommentHumid
	case a.ThermalAmplitude > 12:
		return CommentLargeSwing
	default:
		return CommentComfortable
	}
}

func overviewComment(a *models.DayAnalysis) string {
	switch {
	case a.SunnyHours >= 8:
		return CommentMostlySunny
	case a.SunnyHours >= 4:
		return CommentSomeSun
	default:
		return CommentOvercast
	}
}
