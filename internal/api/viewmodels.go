package api

import (
	"fmt"
	"math"
	"time"

	"github.com/capagde/sailcast/internal/events"
	"github.com/capagde/sailcast/internal/models"
	"github.com/capagde/sailcast/internal/sailing"
)

// dash renders a metric with no samples; never shown as 0.
const dash = "–"

// CalendarData is the page model for the forecast calendar.
type CalendarData struct {
	Days      []CalendarDay
	Source    string
	Synthetic bool
	FetchedAt time.Time
}

// CalendarDay is one calendar cell plus its expanded detail. All label
// fields are i18n keys; the templates and API consumers translate them.
type CalendarDay struct {
	Date      string
	Weekday   string
	IsToday   bool
	Summary   models.DailySummary
	Condition sailing.Condition
	ColorBand string
	Sector    string
	Event     *events.Event

	TempMaxText  string
	TempMinText  string
	WindText     string
	GustText     string
	PressureText string
}

func buildCalendarDay(s models.DailySummary, today string) CalendarDay {
	cond := sailing.Classify(sailing.DailyMetrics(s))

	day := CalendarDay{
		Date:         s.Date,
		IsToday:      s.Date == today,
		Summary:      s,
		Condition:    cond,
		ColorBand:    sailing.ColorBand(cond.Beaufort.Scale),
		Sector:       sectorKey(s.WindDirDominant),
		TempMaxText:  fmtValue(s.TempMax, "%.0f°"),
		TempMinText:  fmtValue(s.TempMin, "%.0f°"),
		WindText:     fmtValue(s.WindSpeedMax, "%.0f km/h"),
		GustText:     fmtValue(s.WindGustMax, "%.0f km/h"),
		PressureText: fmtValue(s.PressureMean, "%.0f hPa"),
	}

	if t, err := time.Parse("2006-01-02", s.Date); err == nil {
		day.Weekday = t.Weekday().String()[:3]
		if ev, ok := events.SpecialEvent(t); ok {
			e := ev
			day.Event = &e
		}
	}

	return day
}

func fmtValue(v float64, format string) string {
	if math.IsNaN(v) {
		return dash
	}
	return fmt.Sprintf(format, v)
}

// sectorKey maps a bearing to one of eight compass-sector label keys.
func sectorKey(degrees float64) string {
	if math.IsNaN(degrees) {
		return "dir.unknown"
	}
	switch {
	case degrees >= 337.5 || degrees < 22.5:
		return "dir.n"
	case degrees < 67.5:
		return "dir.ne"
	case degrees < 112.5:
		return "dir.e"
	case degrees < 157.5:
		return "dir.se"
	case degrees < 202.5:
		return "dir.s"
	case degrees < 247.5:
		return "dir.sw"
	case degrees < 292.5:
		return "dir.w"
	default:
		return "dir.nw"
	}
}
