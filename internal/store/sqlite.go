package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/capagde/sailcast/internal/models"
)

// Store caches the most recent forecast between refresh cycles. The
// analysis core itself is stateless; this layer only keeps the site
// serving through provider outages.
type Store struct {
	db  *sql.DB
	loc *time.Location
}

func New(db *sql.DB, loc *time.Location) *Store {
	return &Store{db: db, loc: loc}
}

// ReplaceForecastDays swaps the cached forecast for a fresh one in a single
// transaction. Summaries are discarded and rebuilt wholesale on every
// refresh, never mutated in place.
func (s *Store) ReplaceForecastDays(days []models.DailySummary, source string, fetchedAt time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM forecast_days`); err != nil {
		return fmt.Errorf("clear forecast: %w", err)
	}

	for _, d := range days {
		var analysisJSON sql.NullString
		if d.Analysis != nil {
			b, err := json.Marshal(d.Analysis)
			if err != nil {
				return fmt.Errorf("marshal analysis %s: %w", d.Date, err)
			}
			analysisJSON = sql.NullString{String: string(b), Valid: true}
		}

		_, err := tx.Exec(`
			INSERT INTO forecast_days (date, temp_max, temp_min, wind_speed_max, wind_gust_max, wind_dir_dominant, pressure_mean, weather_code, analysis_json, source, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, d.Date,
			nullFloat(d.TempMax), nullFloat(d.TempMin),
			nullFloat(d.WindSpeedMax), nullFloat(d.WindGustMax),
			nullFloat(d.WindDirDominant), nullFloat(d.PressureMean),
			nullCode(d.WeatherCode), analysisJSON, source, fetchedAt)
		if err != nil {
			return fmt.Errorf("insert day %s: %w", d.Date, err)
		}
	}

	return tx.Commit()
}

// GetForecastDays returns the cached days in ascending date order together
// with their data source and fetch time.
func (s *Store) GetForecastDays() ([]models.DailySummary, string, time.Time, error) {
	rows, err := s.db.Query(`
		SELECT date, temp_max, temp_min, wind_speed_max, wind_gust_max, wind_dir_dominant, pressure_mean, weather_code, analysis_json, source, fetched_at
		FROM forecast_days
		ORDER BY date ASC
	`)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	defer rows.Close()

	var days []models.DailySummary
	var source string
	var fetchedAt time.Time
	for rows.Next() {
		d, src, at, err := scanDay(rows)
		if err != nil {
			return nil, "", time.Time{}, err
		}
		days = append(days, d)
		source = src
		fetchedAt = at
	}
	return days, source, fetchedAt, rows.Err()
}

// GetDay returns one cached day, or nil when the date is not in the
// forecast horizon.
func (s *Store) GetDay(date string) (*models.DailySummary, error) {
	row := s.db.QueryRow(`
		SELECT date, temp_max, temp_min, wind_speed_max, wind_gust_max, wind_dir_dominant, pressure_mean, weather_code, analysis_json, source, fetched_at
		FROM forecast_days
		WHERE date = ?
	`, date)

	d, _, _, err := scanDay(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDay(row rowScanner) (models.DailySummary, string, time.Time, error) {
	var d models.DailySummary
	var tempMax, tempMin, windMax, gustMax, dirDom, pressure sql.NullFloat64
	var code sql.NullInt64
	var analysisJSON sql.NullString
	var source string
	var fetchedAt time.Time

	err := row.Scan(&d.Date, &tempMax, &tempMin, &windMax, &gustMax, &dirDom, &pressure, &code, &analysisJSON, &source, &fetchedAt)
	if err != nil {
		return d, "", time.Time{}, err
	}

	d.TempMax = floatOrNaN(tempMax)
	d.TempMin = floatOrNaN(tempMin)
	d.WindSpeedMax = floatOrNaN(windMax)
	d.WindGustMax = floatOrNaN(gustMax)
	d.WindDirDominant = floatOrNaN(dirDom)
	d.PressureMean = floatOrNaN(pressure)
	d.WeatherCode = -1
	if code.Valid {
		d.WeatherCode = int(code.Int64)
	}

	if analysisJSON.Valid {
		var a models.DayAnalysis
		if err := json.Unmarshal([]byte(analysisJSON.String), &a); err != nil {
			return d, "", time.Time{}, fmt.Errorf("unmarshal analysis %s: %w", d.Date, err)
		}
		d.Analysis = &a
	}

	return d, source, fetchedAt, nil
}

// RefreshState describes the last completed refresh, for health reporting.
type RefreshState struct {
	Source    string
	FetchedAt time.Time
	DayCount  int
}

func (s *Store) GetRefreshState() (*RefreshState, error) {
	row := s.db.QueryRow(`SELECT source, fetched_at, COUNT(*) FROM forecast_days GROUP BY source, fetched_at LIMIT 1`)
	var st RefreshState
	err := row.Scan(&st.Source, &st.FetchedAt, &st.DayCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// IngestRun is the audit record of one refresh cycle.
type IngestRun struct {
	ID           int64
	Source       string
	StartedAt    time.Time
	CompletedAt  sql.NullTime
	Success      bool
	DaysStored   sql.NullInt64
	ErrorMessage sql.NullString
}

func (s *Store) StartIngestRun(source string) (*IngestRun, error) {
	run := &IngestRun{Source: source, StartedAt: time.Now()}
	res, err := s.db.Exec(
		`INSERT INTO ingest_runs (source, started_at) VALUES (?, ?)`,
		run.Source, run.StartedAt,
	)
	if err != nil {
		return nil, err
	}
	run.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (s *Store) CompleteIngestRun(run *IngestRun) error {
	_, err := s.db.Exec(`
		UPDATE ingest_runs
		SET completed_at = ?, success = ?, days_stored = ?, error_message = ?
		WHERE id = ?
	`, time.Now(), run.Success, run.DaysStored, run.ErrorMessage, run.ID)
	return err
}

func (s *Store) GetRecentIngestRuns(limit int) ([]IngestRun, error) {
	rows, err := s.db.Query(`
		SELECT id, source, started_at, completed_at, success, days_stored, error_message
		FROM ingest_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []IngestRun
	for rows.Next() {
		var r IngestRun
		var success sql.NullBool
		if err := rows.Scan(&r.ID, &r.Source, &r.StartedAt, &r.CompletedAt, &success, &r.DaysStored, &r.ErrorMessage); err != nil {
			return nil, err
		}
		r.Success = success.Valid && success.Bool
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// nullFloat maps the NaN "unavailable" sentinel to SQL NULL so the cache
// round-trips it faithfully.
func nullFloat(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func nullCode(code int) sql.NullInt64 {
	if code < 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(code), Valid: true}
}

func floatOrNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
