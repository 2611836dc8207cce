package sailing

import (
	"github.com/capagde/sailcast/internal/meteo"
	"github.com/capagde/sailcast/internal/models"
)

// BuildForecast is the aggregate-then-classify entry point: it buckets the
// hourly series into local days, reduces each to its summary and attaches
// the full day analysis. Pure; invoked once per fetch result.
func BuildForecast(obs []models.HourlyObservation, dayKey meteo.DayKeyFunc) []models.DailySummary {
	groups := meteo.GroupByDay(obs, dayKey)

	days := make([]models.DailySummary, 0, len(groups))
	for _, g := range groups {
		s := meteo.Summarize(g)
		s.Analysis = AnalyzeDay(g.Hours)
		days = append(days, s)
	}
	return days
}
