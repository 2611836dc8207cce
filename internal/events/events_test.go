package events

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSpecialEvent(t *testing.T) {
	tests := []struct {
		name      string
		date      time.Time
		wantLabel string
		wantKind  string
		wantOK    bool
	}{
		{"high season July", date(2024, time.July, 3), SeasonHigh, KindSeason, true},
		{"high season August", date(2024, time.August, 20), SeasonHigh, KindSeason, true},
		{"shoulder season June", date(2024, time.June, 1), SeasonIn, KindSeason, true},
		{"shoulder season September", date(2024, time.September, 30), SeasonIn, KindSeason, true},
		{"bastille day masked by high season", date(2024, time.July, 14), SeasonHigh, KindSeason, true},
		{"assumption masked by high season", date(2024, time.August, 15), SeasonHigh, KindSeason, true},
		{"christmas", date(2024, time.December, 25), "holiday.christmas", KindHoliday, true},
		{"labour day", date(2025, time.May, 1), "holiday.labour_day", KindHoliday, true},
		{"armistice", date(2024, time.November, 11), "holiday.armistice", KindHoliday, true},
		{"plain winter day", date(2024, time.February, 12), "", "", false},
		{"plain spring day", date(2024, time.April, 9), "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := SpecialEvent(tt.date)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ev.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", ev.Label, tt.wantLabel)
			}
			if ev.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", ev.Kind, tt.wantKind)
			}
		})
	}
}

func TestSpecialEvent_YearIndependent(t *testing.T) {
	for _, year := range []int{2023, 2024, 2030} {
		ev, ok := SpecialEvent(date(year, time.July, 14))
		if !ok || ev.Label != SeasonHigh {
			t.Errorf("year %d: got %v/%v, want high season", year, ev, ok)
		}
	}
}
