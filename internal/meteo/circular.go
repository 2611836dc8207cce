package meteo

import "math"

// CircularMean returns the mean bearing of angles (degrees) in [0,360).
// An arithmetic mean is wrong at the 0/360 wrap: the mean of 350 and 10
// must be 0, not 180. Returns NaN for an empty sample.
func CircularMean(angles []float64) float64 {
	if len(angles) == 0 {
		return math.NaN()
	}

	var sumSin, sumCos float64
	for _, a := range angles {
		rad := a * math.Pi / 180
		sumSin += math.Sin(rad)
		sumCos += math.Cos(rad)
	}

	mean := math.Atan2(sumSin, sumCos) * 180 / math.Pi
	if mean < 0 {
		mean += 360
	}
	return math.Mod(mean, 360)
}

// CircularStdDev returns the sample standard deviation (degrees) of angles
// around mean, computed over signed differences wrapped into (-180, 180].
// Returns 0 for fewer than two samples.
func CircularStdDev(angles []float64, mean float64) float64 {
	if len(angles) < 2 {
		return 0
	}

	var sumSq float64
	for _, a := range angles {
		d := angularDiff(a, mean) * math.Pi / 180
		sumSq += d * d
	}

	variance := sumSq / float64(len(angles)-1)
	return math.Sqrt(variance) * 180 / math.Pi
}

// angularDiff returns a-b wrapped into (-180, 180].
func angularDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d > 180 {
		d -= 360
	}
	if d <= -180 {
		d += 360
	}
	return d
}
