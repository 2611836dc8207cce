package sailing

import (
	"github.com/capagde/sailcast/internal/models"
)

// Daytime span considered for windowing, local hours. Hours outside it
// still feed the daily aggregates, just not the windows.
const (
	spanStartHour = 6
	spanEndHour   = 22
)

// dayParts are the fixed sub-ranges for "best time to sail" picks.
var dayParts = []struct {
	part      models.DayPart
	from, to  int // local hour, to exclusive
}{
	{models.PartMorning, 6, 12},
	{models.PartAfternoon, 12, 18},
	{models.PartEvening, 18, 22},
}

func inSpan(h models.HourlyObservation) bool {
	hour := h.Time.Hour()
	return hour >= spanStartHour && hour < spanEndHour
}

// SegmentDay classifies every daytime hour of one day and merges
// consecutive hours sharing a level into contiguous windows. Each window
// carries the reason of the hour that opened it. Windows partition the
// observed in-span hours in time order; gaps in the underlying data are
// not reconstructed.
func SegmentDay(hours []models.HourlyObservation) []models.DayWindow {
	var windows []models.DayWindow
	var open *models.DayWindow
	var last models.HourlyObservation
	haveLast := false

	for _, h := range hours {
		if !inSpan(h) {
			continue
		}
		c := Classify(HourlyMetrics(h))

		if open == nil {
			open = &models.DayWindow{Start: h.Time, Level: c.Level, Reason: c.Reason}
		} else if c.Level != open.Level {
			open.End = h.Time
			windows = append(windows, *open)
			open = &models.DayWindow{Start: h.Time, Level: c.Level, Reason: c.Reason}
		}

		last = h
		haveLast = true
	}

	if open != nil && haveLast {
		// Close at the last hour actually observed, not a fixed clock
		// time, so partial days still produce a valid window.
		open.End = last.Time
		windows = append(windows, *open)
	}

	return windows
}

// BestPeriods picks the least severe classified hour of each day part,
// first hour winning ties. A part with no observed hours reports a neutral
// moderate with a no-data reason instead of failing.
func BestPeriods(hours []models.HourlyObservation) []models.DayPeriodBest {
	best := make([]models.DayPeriodBest, 0, len(dayParts))

	for _, p := range dayParts {
		pick := models.DayPeriodBest{Part: p.part, Level: models.LevelModerate, Reason: ReasonNoData}
		found := false

		for _, h := range hours {
			hour := h.Time.Hour()
			if hour < p.from || hour >= p.to {
				continue
			}
			c := Classify(HourlyMetrics(h))
			if !found || c.Level.Severity() < pick.Level.Severity() {
				pick.Hour = h.Time
				pick.Level = c.Level
				pick.Reason = c.Reason
				found = true
			}
		}

		best = append(best, pick)
	}

	return best
}
