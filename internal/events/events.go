// Package events annotates calendar dates with seasonal and holiday labels,
// independent of weather.
package events

import (
	"fmt"
	"time"
)

// Event is a dated annotation for the calendar.
type Event struct {
	Label string `json:"label"` // label key, e.g. "season.high" or "holiday.bastille_day"
	Kind  string `json:"kind"`  // "season" or "holiday"
}

const (
	KindSeason  = "season"
	KindHoliday = "holiday"

	SeasonHigh = "season.high"
	SeasonIn   = "season.in"
)

// holidays maps fixed month-day keys to holiday label keys. Only reachable
// outside June-September; the charter season masks anything inside it.
var holidays = map[string]string{
	"01-01": "holiday.new_year",
	"05-01": "holiday.labour_day",
	"05-08": "holiday.victory_day",
	"07-14": "holiday.bastille_day",
	"08-15": "holiday.assumption",
	"11-01": "holiday.all_saints",
	"11-11": "holiday.armistice",
	"12-25": "holiday.christmas",
}

// SpecialEvent returns the annotation for a date, if any. The seasonal rule
// takes precedence: any date in June through September reports the season
// label even when it is also a fixed holiday (Bastille Day in July reports
// high season).
func SpecialEvent(date time.Time) (Event, bool) {
	switch date.Month() {
	case time.July, time.August:
		return Event{Label: SeasonHigh, Kind: KindSeason}, true
	case time.June, time.September:
		return Event{Label: SeasonIn, Kind: KindSeason}, true
	}

	key := fmt.Sprintf("%02d-%02d", int(date.Month()), date.Day())
	if label, ok := holidays[key]; ok {
		return Event{Label: label, Kind: KindHoliday}, true
	}

	return Event{}, false
}
