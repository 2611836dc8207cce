package meteo

// Force is a point on the 0-12 Beaufort wind scale.
type Force struct {
	Scale       int    `json:"scale"`
	Description string `json:"description"` // label key, e.g. "beaufort.fresh_breeze"
}

// beaufortBands maps ascending sustained-speed breakpoints (km/h,
// inclusive upper bounds) to forces 1-11. Below 1 km/h is calm, above the
// last breakpoint is hurricane force 12.
var beaufortBands = []struct {
	maxKmh float64
	scale  int
	key    string
}{
	{5, 1, "beaufort.light_air"},
	{11, 2, "beaufort.light_breeze"},
	{19, 3, "beaufort.gentle_breeze"},
	{28, 4, "beaufort.moderate_breeze"},
	{38, 5, "beaufort.fresh_breeze"},
	{49, 6, "beaufort.strong_breeze"},
	{61, 7, "beaufort.near_gale"},
	{74, 8, "beaufort.gale"},
	{88, 9, "beaufort.strong_gale"},
	{102, 10, "beaufort.storm"},
	{117, 11, "beaufort.violent_storm"},
}

// Beaufort maps a sustained wind speed in km/h to its Beaufort force.
// Negative speeds clamp to calm.
func Beaufort(windKmh float64) Force {
	if windKmh < 1 {
		return Force{Scale: 0, Description: "beaufort.calm"}
	}
	for _, b := range beaufortBands {
		if windKmh <= b.maxKmh {
			return Force{Scale: b.scale, Description: b.key}
		}
	}
	return Force{Scale: 12, Description: "beaufort.hurricane"}
}
