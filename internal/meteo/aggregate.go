package meteo

import (
	"math"
	"sort"
	"time"

	"github.com/capagde/sailcast/internal/models"
)

// DayKeyFunc derives the local calendar-day key (YYYY-MM-DD) for a
// timestamp. Grouping must use the provider's local-day convention, never a
// UTC shift, or samples near midnight land on the wrong day.
type DayKeyFunc func(time.Time) string

// LocalDayKey returns a DayKeyFunc for the given location.
func LocalDayKey(loc *time.Location) DayKeyFunc {
	return func(t time.Time) string {
		return t.In(loc).Format("2006-01-02")
	}
}

// DayGroup is the hourly samples of one local calendar day, in time order.
type DayGroup struct {
	Date  string
	Hours []models.HourlyObservation
}

// GroupByDay buckets a time-ordered hourly series into per-day groups,
// ascending by date.
func GroupByDay(obs []models.HourlyObservation, dayKey DayKeyFunc) []DayGroup {
	byDate := make(map[string][]models.HourlyObservation)
	for _, o := range obs {
		key := dayKey(o.Time)
		byDate[key] = append(byDate[key], o)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	groups := make([]DayGroup, 0, len(dates))
	for _, date := range dates {
		groups = append(groups, DayGroup{Date: date, Hours: byDate[date]})
	}
	return groups
}

// AggregateDays reduces a flat hourly series to one DailySummary per local
// day present in the input, in ascending date order.
func AggregateDays(obs []models.HourlyObservation, dayKey DayKeyFunc) []models.DailySummary {
	groups := GroupByDay(obs, dayKey)
	summaries := make([]models.DailySummary, 0, len(groups))
	for _, g := range groups {
		summaries = append(summaries, Summarize(g))
	}
	return summaries
}

// gustFactor synthesizes a gust estimate when the provider has no gust
// samples for a day.
const gustFactor = 1.3

// Summarize reduces one day's samples to its summary. Metrics with no
// samples come out as NaN, never a fabricated value.
func Summarize(g DayGroup) models.DailySummary {
	var temps, speeds, gusts, dirs, pressures []float64
	for _, h := range g.Hours {
		if models.Available(h.Temperature) {
			temps = append(temps, h.Temperature)
		}
		if models.Available(h.WindSpeed) {
			speeds = append(speeds, h.WindSpeed)
		}
		if models.Available(h.WindGust) {
			gusts = append(gusts, h.WindGust)
		}
		if models.Available(h.WindDir) {
			dirs = append(dirs, h.WindDir)
		}
		if models.Available(h.Pressure) {
			pressures = append(pressures, h.Pressure)
		}
	}

	s := models.DailySummary{
		Date:            g.Date,
		TempMax:         maxOf(temps),
		TempMin:         minOf(temps),
		WindSpeedMax:    maxOf(speeds),
		WindGustMax:     maxOf(gusts),
		WindDirDominant: CircularMean(dirs),
		PressureMean:    Mean(pressures),
		WeatherCode:     DominantCode(g.Hours),
	}

	if len(gusts) == 0 && models.Available(s.WindSpeedMax) {
		s.WindGustMax = s.WindSpeedMax * gustFactor
	}

	return s
}

// Mean is the arithmetic mean of vals; NaN when vals is empty.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// DominantCode returns the most frequent weather code in the day's hours.
// The first-seen code wins ties; -1 when no hour carries a code.
func DominantCode(hours []models.HourlyObservation) int {
	counts := make(map[int]int)
	var order []int
	for _, h := range hours {
		if h.WeatherCode < 0 {
			continue
		}
		if counts[h.WeatherCode] == 0 {
			order = append(order, h.WeatherCode)
		}
		counts[h.WeatherCode]++
	}

	best := -1
	bestCount := 0
	for _, code := range order {
		if counts[code] > bestCount {
			best = code
			bestCount = counts[code]
		}
	}
	return best
}

// PeakGust returns the day's maximum gust and the timestamp of the first
// hour attaining it. NaN and the zero time when no gust samples exist.
func PeakGust(hours []models.HourlyObservation) (float64, time.Time) {
	peak := math.NaN()
	var at time.Time
	for _, h := range hours {
		if !models.Available(h.WindGust) {
			continue
		}
		if !models.Available(peak) || h.WindGust > peak {
			peak = h.WindGust
			at = h.Time
		}
	}
	return peak, at
}

// sunnyCodes are the WMO codes counted as sunny: clear, mainly clear,
// partly cloudy.
var sunnyCodes = map[int]bool{0: true, 1: true, 2: true}

// SunnyHours counts hours that are clear-skied with zero measured
// precipitation. An hour with missing rain samples is not counted.
func SunnyHours(hours []models.HourlyObservation) int {
	n := 0
	for _, h := range hours {
		if sunnyCodes[h.WeatherCode] && h.Rain == 0 && h.Showers == 0 {
			n++
		}
	}
	return n
}

func maxOf(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
