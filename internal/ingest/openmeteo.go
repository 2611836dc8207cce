package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/capagde/sailcast/internal/metrics"
	"github.com/capagde/sailcast/internal/models"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// hourlyFields are the index-aligned arrays requested from the provider.
var hourlyFields = []string{
	"temperature_2m",
	"wind_speed_10m",
	"wind_gusts_10m",
	"wind_direction_10m",
	"relative_humidity_2m",
	"pressure_msl",
	"visibility",
	"weather_code",
	"rain",
	"showers",
}

// OpenMeteo fetches the hourly forecast series for one location.
type OpenMeteo struct {
	baseURL  string
	lat, lon float64
	days     int
	loc      *time.Location
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
}

func NewOpenMeteo(lat, lon float64, days int, loc *time.Location) *OpenMeteo {
	return &OpenMeteo{
		baseURL: defaultBaseURL,
		lat:     lat,
		lon:     lon,
		days:    days,
		loc:     loc,
		client:  &http.Client{Timeout: 30 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "openmeteo",
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

// hourlyResponse is the provider envelope. Every field is an array aligned
// by index to Time. Pointer elements keep null samples distinguishable
// from legitimate zeros.
type hourlyResponse struct {
	Hourly struct {
		Time        []string   `json:"time"`
		Temperature []*float64 `json:"temperature_2m"`
		WindSpeed   []*float64 `json:"wind_speed_10m"`
		WindGust    []*float64 `json:"wind_gusts_10m"`
		WindDir     []*float64 `json:"wind_direction_10m"`
		Humidity    []*float64 `json:"relative_humidity_2m"`
		Pressure    []*float64 `json:"pressure_msl"`
		Visibility  []*float64 `json:"visibility"`
		WeatherCode []*int     `json:"weather_code"`
		Rain        []*float64 `json:"rain"`
		Showers     []*float64 `json:"showers"`
	} `json:"hourly"`
}

// FetchHourly retrieves the hourly series for the configured horizon.
// Transient failures retry with exponential backoff inside a circuit
// breaker; 4xx responses other than 429 are permanent.
func (p *OpenMeteo) FetchHourly(ctx context.Context) ([]models.HourlyObservation, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%.4f", p.lat))
	values.Set("longitude", fmt.Sprintf("%.4f", p.lon))
	values.Set("hourly", strings.Join(hourlyFields, ","))
	values.Set("timezone", p.loc.String())
	values.Set("forecast_days", fmt.Sprintf("%d", p.days))
	requestURL := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())

	result, err := p.breaker.Execute(func() (interface{}, error) {
		var body []byte
		operation := func() error {
			start := time.Now()
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("build request: %w", err))
			}
			req.Header.Set("Accept", "application/json")

			resp, err := p.client.Do(req)
			metrics.ProviderLatency.Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.ProviderCallsTotal.WithLabelValues("error").Inc()
				return fmt.Errorf("fetch hourly: %w", err)
			}
			defer resp.Body.Close()
			metrics.ProviderCallsTotal.WithLabelValues(resp.Status).Inc()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return fmt.Errorf("fetch hourly: status %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				return backoff.Permanent(fmt.Errorf("fetch hourly: status %d: %s", resp.StatusCode, string(b)))
			}

			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("read body: %w", err))
			}
			return nil
		}

		bo := backoff.NewExponentialBackOff()
		bo.MaxElapsedTime = 2 * time.Minute
		if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
			return nil, err
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}

	var data hourlyResponse
	if err := json.Unmarshal(result.([]byte), &data); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return p.decodeHourly(data)
}

// decodeHourly turns the aligned-array envelope into observations. Missing
// or short arrays become NaN samples, never zeros.
func (p *OpenMeteo) decodeHourly(data hourlyResponse) ([]models.HourlyObservation, error) {
	h := data.Hourly
	if len(h.Time) == 0 {
		return nil, fmt.Errorf("invalid payload: missing hourly time series")
	}

	obs := make([]models.HourlyObservation, 0, len(h.Time))
	for i, ts := range h.Time {
		// Provider timestamps are local ISO-8601 without offset; parse
		// them in the configured location rather than trusting the string.
		t, err := time.ParseInLocation("2006-01-02T15:04", ts, p.loc)
		if err != nil {
			return nil, fmt.Errorf("parse time %q: %w", ts, err)
		}

		obs = append(obs, models.HourlyObservation{
			Time:        t,
			Temperature: floatAt(h.Temperature, i),
			WindSpeed:   floatAt(h.WindSpeed, i),
			WindGust:    floatAt(h.WindGust, i),
			WindDir:     floatAt(h.WindDir, i),
			Humidity:    floatAt(h.Humidity, i),
			Pressure:    floatAt(h.Pressure, i),
			Visibility:  floatAt(h.Visibility, i),
			Rain:        floatAt(h.Rain, i),
			Showers:     floatAt(h.Showers, i),
			WeatherCode: codeAt(h.WeatherCode, i),
		})
	}
	return obs, nil
}

func floatAt(arr []*float64, i int) float64 {
	if i < len(arr) && arr[i] != nil {
		return *arr[i]
	}
	return math.NaN()
}

func codeAt(arr []*int, i int) int {
	if i < len(arr) && arr[i] != nil {
		return *arr[i]
	}
	return -1
}
