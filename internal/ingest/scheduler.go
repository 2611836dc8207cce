package ingest

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/capagde/sailcast/internal/meteo"
	"github.com/capagde/sailcast/internal/metrics"
	"github.com/capagde/sailcast/internal/models"
	"github.com/capagde/sailcast/internal/sailing"
	"github.com/capagde/sailcast/internal/store"
)

const (
	SourceOpenMeteo = "openmeteo"
	SourceSynthetic = "synthetic"
)

// Scheduler refreshes the cached forecast on an interval: fetch hourly
// data (falling back to synthetic data on any provider failure), run the
// aggregate-then-classify pipeline and replace the cache.
type Scheduler struct {
	store          *store.Store
	provider       *OpenMeteo
	loc            *time.Location
	interval       time.Duration
	horizonDays    int
	forceSynthetic bool
}

func NewScheduler(st *store.Store, provider *OpenMeteo, loc *time.Location, interval time.Duration, horizonDays int) *Scheduler {
	return &Scheduler{
		store:       st,
		provider:    provider,
		loc:         loc,
		interval:    interval,
		horizonDays: horizonDays,
	}
}

// SetSynthetic forces every refresh to use generated data, for local
// development without hitting the provider.
func (s *Scheduler) SetSynthetic(force bool) {
	s.forceSynthetic = force
}

func (s *Scheduler) Run(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		log.Printf("scheduler: initial refresh: %v", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("scheduler: shutting down")
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				log.Printf("scheduler: refresh: %v", err)
			}
		}
	}
}

// Refresh runs one fetch-aggregate-classify-store cycle. The provider
// failing is not an error for the cycle: the synthetic fallback keeps the
// cache populated so the calendar never goes empty.
func (s *Scheduler) Refresh(ctx context.Context) error {
	obs, source := s.fetch(ctx)

	run, err := s.store.StartIngestRun(source)
	if err != nil {
		log.Printf("scheduler: start ingest run: %v", err)
	}

	days := sailing.BuildForecast(obs, meteo.LocalDayKey(s.loc))
	err = s.store.ReplaceForecastDays(days, source, time.Now())

	if run != nil {
		run.Success = err == nil
		run.DaysStored = sql.NullInt64{Int64: int64(len(days)), Valid: true}
		if err != nil {
			run.ErrorMessage = sql.NullString{String: err.Error(), Valid: true}
		}
		if cerr := s.store.CompleteIngestRun(run); cerr != nil {
			log.Printf("scheduler: complete ingest run: %v", cerr)
		}
	}

	if err != nil {
		return err
	}

	metrics.RefreshesTotal.WithLabelValues(source).Inc()
	metrics.DaysCached.Set(float64(len(days)))
	log.Printf("scheduler: cached %d forecast days from %s", len(days), source)
	return nil
}

func (s *Scheduler) fetch(ctx context.Context) ([]models.HourlyObservation, string) {
	if !s.forceSynthetic {
		obs, err := s.provider.FetchHourly(ctx)
		if err == nil {
			return obs, SourceOpenMeteo
		}
		log.Printf("scheduler: provider fetch failed, using synthetic data: %v", err)
	}

	obs := SyntheticDays(time.Now(), s.horizonDays, s.loc, time.Now().UnixNano())
	return obs, SourceSynthetic
}
