package meteo

import "github.com/capagde/sailcast/internal/models"

// Named winds of the Golfe du Lion, keyed by the compass sector the wind
// blows from. Sectors are 45° wide, centred on the eight cardinal and
// intercardinal bearings.
const (
	WindUnknown    = "wind.unknown"
	WindTramontane = "wind.tramontane" // NW, dry and strong
	WindMistral    = "wind.mistral"    // N, down the Rhône valley
	WindGrec       = "wind.grec"       // NE
	WindLevant     = "wind.levant"     // E, humid
	WindMarin      = "wind.marin"      // SE, onshore swell
	WindAutan      = "wind.autan"      // S
	WindLibeccio   = "wind.libeccio"   // SW
	WindPonant     = "wind.ponant"     // W
)

// WindName returns the regional name key for a mean bearing in degrees.
// NaN (no direction samples) maps to unknown.
func WindName(meanDir float64) string {
	if !models.Available(meanDir) {
		return WindUnknown
	}

	switch {
	case meanDir >= 337.5 || meanDir < 22.5:
		return WindMistral
	case meanDir < 67.5:
		return WindGrec
	case meanDir < 112.5:
		return WindLevant
	case meanDir < 157.5:
		return WindMarin
	case meanDir < 202.5:
		return WindAutan
	case meanDir < 247.5:
		return WindLibeccio
	case meanDir < 292.5:
		return WindPonant
	default:
		return WindTramontane
	}
}
