package sailing

import (
	"testing"
	"time"

	"github.com/capagde/sailcast/internal/models"
)

func sampleHour(hour int, mutate func(*models.HourlyObservation)) models.HourlyObservation {
	obs := models.HourlyObservation{
		Time:        time.Date(2024, 7, 10, hour, 0, 0, 0, time.UTC),
		Temperature: 25,
		WindSpeed:   12,
		WindGust:    15,
		WindDir:     315,
		Humidity:    55,
		Pressure:    1016,
		Visibility:  25000,
		WeatherCode: 1,
	}
	if mutate != nil {
		mutate(&obs)
	}
	return obs
}

func fullDay(mutate func(hour int, o *models.HourlyObservation)) []models.HourlyObservation {
	hours := make([]models.HourlyObservation, 0, 24)
	for h := 0; h < 24; h++ {
		hours = append(hours, sampleHour(h, func(o *models.HourlyObservation) {
			if mutate != nil {
				mutate(h, o)
			}
		}))
	}
	return hours
}

func TestSegmentDay_UniformDayIsOneWindow(t *testing.T) {
	windows := SegmentDay(fullDay(nil))
	if len(windows) != 1 {
		t.Fatalf("len(windows) = %d, want 1", len(windows))
	}
	w := windows[0]
	if w.Level != models.LevelExcellent {
		t.Errorf("Level = %v, want excellent", w.Level)
	}
	if w.Start.Hour() != 6 {
		t.Errorf("Start hour = %d, want 6", w.Start.Hour())
	}
	if w.End.Hour() != 21 {
		t.Errorf("End hour = %d, want 21 (last observed in-span hour)", w.End.Hour())
	}
}

func TestSegmentDay_SplitsOnLevelChange(t *testing.T) {
	// Calm morning, a windy spell over midday, calm again.
	hours := fullDay(func(hour int, o *models.HourlyObservation) {
		if hour >= 12 && hour < 16 {
			o.WindSpeed = 45
			o.WindGust = 55
		}
	})

	windows := SegmentDay(hours)
	if len(windows) != 3 {
		t.Fatalf("len(windows) = %d, want 3", len(windows))
	}

	for i := 1; i < len(windows); i++ {
		if windows[i].Level == windows[i-1].Level {
			t.Errorf("adjacent windows %d and %d share level %v", i-1, i, windows[i].Level)
		}
		if !windows[i].Start.Equal(windows[i-1].End) {
			t.Errorf("window %d starts at %v, previous ends at %v", i, windows[i].Start, windows[i-1].End)
		}
	}

	if windows[1].Level != models.LevelDifficult {
		t.Errorf("midday window Level = %v, want difficult", windows[1].Level)
	}
	if windows[1].Reason != ReasonStrongWind {
		t.Errorf("midday window Reason = %q, want %q", windows[1].Reason, ReasonStrongWind)
	}
	if windows[1].Start.Hour() != 12 || windows[1].End.Hour() != 16 {
		t.Errorf("midday window = %d..%d, want 12..16", windows[1].Start.Hour(), windows[1].End.Hour())
	}
}

func TestSegmentDay_IgnoresNightHours(t *testing.T) {
	// A violent night squall must not leak into the daytime windows.
	hours := fullDay(func(hour int, o *models.HourlyObservation) {
		if hour < 6 || hour >= 22 {
			o.WindGust = 95
		}
	})
	windows := SegmentDay(hours)
	if len(windows) != 1 {
		t.Fatalf("len(windows) = %d, want 1", len(windows))
	}
	if windows[0].Level != models.LevelExcellent {
		t.Errorf("Level = %v, want excellent", windows[0].Level)
	}
}

func TestSegmentDay_PartialDay(t *testing.T) {
	hours := []models.HourlyObservation{
		sampleHour(8, nil),
		sampleHour(9, nil),
		sampleHour(10, nil),
	}
	windows := SegmentDay(hours)
	if len(windows) != 1 {
		t.Fatalf("len(windows) = %d, want 1", len(windows))
	}
	if windows[0].Start.Hour() != 8 || windows[0].End.Hour() != 10 {
		t.Errorf("window = %d..%d, want 8..10", windows[0].Start.Hour(), windows[0].End.Hour())
	}
}

func TestSegmentDay_Empty(t *testing.T) {
	if windows := SegmentDay(nil); len(windows) != 0 {
		t.Errorf("len(windows) = %d, want 0", len(windows))
	}
}

func TestBestPeriods_PicksLeastSevereHour(t *testing.T) {
	// Morning deteriorates from excellent to difficult; afternoon is windy
	// throughout; evening is uniformly good.
	hours := fullDay(func(hour int, o *models.HourlyObservation) {
		switch {
		case hour >= 10 && hour < 18:
			o.WindSpeed = 45
			o.WindGust = 55
		case hour >= 18:
			o.Temperature = 18
			o.WindSpeed = 16
			o.WindGust = 20
		}
	})

	best := BestPeriods(hours)
	if len(best) != 3 {
		t.Fatalf("len(best) = %d, want 3", len(best))
	}

	morning, afternoon, evening := best[0], best[1], best[2]

	if morning.Part != models.PartMorning || morning.Level != models.LevelExcellent {
		t.Errorf("morning = %v/%v, want morning/excellent", morning.Part, morning.Level)
	}
	if morning.Hour.Hour() != 6 {
		t.Errorf("morning pick hour = %d, want 6 (first winning hour)", morning.Hour.Hour())
	}
	if afternoon.Part != models.PartAfternoon || afternoon.Level != models.LevelDifficult {
		t.Errorf("afternoon = %v/%v, want afternoon/difficult", afternoon.Part, afternoon.Level)
	}
	if evening.Part != models.PartEvening || evening.Level != models.LevelGood {
		t.Errorf("evening = %v/%v, want evening/good", evening.Part, evening.Level)
	}

	if morning.Level.Severity() >= afternoon.Level.Severity() {
		t.Errorf("morning should rank less severe than the windy afternoon")
	}
}

func TestBestPeriods_EmptyPartIsNeutral(t *testing.T) {
	hours := []models.HourlyObservation{
		sampleHour(7, nil),
		sampleHour(8, nil),
	}
	best := BestPeriods(hours)
	if len(best) != 3 {
		t.Fatalf("len(best) = %d, want 3", len(best))
	}
	for _, p := range best[1:] {
		if p.Level != models.LevelModerate || p.Reason != ReasonNoData {
			t.Errorf("%v = %v/%q, want moderate/%q", p.Part, p.Level, p.Reason, ReasonNoData)
		}
	}
}
