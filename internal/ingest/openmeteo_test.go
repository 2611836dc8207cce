package ingest

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const hourlyPayload = `{
  "hourly": {
    "time": ["2024-07-10T00:00", "2024-07-10T01:00", "2024-07-10T02:00"],
    "temperature_2m": [24.5, null, 23.1],
    "wind_speed_10m": [12.0, 14.5, 16.0],
    "wind_gusts_10m": [18.0, 20.0, 25.5],
    "wind_direction_10m": [315, 320, 310],
    "relative_humidity_2m": [60, 62, 65],
    "pressure_msl": [1015.2, 1015.0, 1014.8],
    "visibility": [24000, 24000, 22000],
    "weather_code": [1, 1, null],
    "rain": [0, 0, 0.2],
    "showers": [0, 0, 0]
  }
}`

func testProvider(t *testing.T, handler http.HandlerFunc) *OpenMeteo {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewOpenMeteo(43.3167, 3.4667, 3, time.UTC)
	p.baseURL = srv.URL
	return p
}

func TestFetchHourly(t *testing.T) {
	var gotQuery map[string][]string
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, hourlyPayload)
	})

	obs, err := p.FetchHourly(context.Background())
	if err != nil {
		t.Fatalf("FetchHourly: %v", err)
	}
	if len(obs) != 3 {
		t.Fatalf("len(obs) = %d, want 3", len(obs))
	}

	if got := gotQuery["latitude"]; len(got) != 1 || got[0] != "43.3167" {
		t.Errorf("latitude query = %v, want 43.3167", got)
	}
	if got := gotQuery["forecast_days"]; len(got) != 1 || got[0] != "3" {
		t.Errorf("forecast_days query = %v, want 3", got)
	}

	first := obs[0]
	if first.Time.Hour() != 0 || first.Time.Day() != 10 {
		t.Errorf("first.Time = %v, want 2024-07-10T00:00", first.Time)
	}
	if first.Temperature != 24.5 || first.WindSpeed != 12.0 || first.WindGust != 18.0 {
		t.Errorf("first sample mismatch: %+v", first)
	}
	if first.WeatherCode != 1 {
		t.Errorf("first.WeatherCode = %d, want 1", first.WeatherCode)
	}

	// Null samples decode to sentinels, not zeros.
	if !math.IsNaN(obs[1].Temperature) {
		t.Errorf("obs[1].Temperature = %v, want NaN for null", obs[1].Temperature)
	}
	if obs[2].WeatherCode != -1 {
		t.Errorf("obs[2].WeatherCode = %d, want -1 for null", obs[2].WeatherCode)
	}
}

func TestFetchHourly_MissingTimeSeries(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hourly":{"time":[]}}`)
	})

	if _, err := p.FetchHourly(context.Background()); err == nil {
		t.Fatal("want error for empty time series")
	}
}

func TestFetchHourly_ClientErrorIsPermanent(t *testing.T) {
	calls := 0
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	if _, err := p.FetchHourly(context.Background()); err == nil {
		t.Fatal("want error for 400 response")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (4xx must not retry)", calls)
	}
}

func TestFetchHourly_RetriesServerError(t *testing.T) {
	calls := 0
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, hourlyPayload)
	})

	obs, err := p.FetchHourly(context.Background())
	if err != nil {
		t.Fatalf("FetchHourly: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if len(obs) != 3 {
		t.Errorf("len(obs) = %d, want 3", len(obs))
	}
}

func TestDecodeHourly_ShortArrays(t *testing.T) {
	p := NewOpenMeteo(43.3167, 3.4667, 1, time.UTC)

	var data hourlyResponse
	data.Hourly.Time = []string{"2024-07-10T00:00", "2024-07-10T01:00"}
	v := 21.0
	data.Hourly.Temperature = []*float64{&v} // one element short

	obs, err := p.decodeHourly(data)
	if err != nil {
		t.Fatalf("decodeHourly: %v", err)
	}
	if len(obs) != 2 {
		t.Fatalf("len(obs) = %d, want 2", len(obs))
	}
	if obs[0].Temperature != 21.0 {
		t.Errorf("obs[0].Temperature = %v, want 21", obs[0].Temperature)
	}
	if !math.IsNaN(obs[1].Temperature) {
		t.Errorf("obs[1].Temperature = %v, want NaN for missing element", obs[1].Temperature)
	}
	if !math.IsNaN(obs[0].WindSpeed) {
		t.Errorf("obs[0].WindSpeed = %v, want NaN for absent field", obs[0].WindSpeed)
	}
	if obs[0].WeatherCode != -1 {
		t.Errorf("obs[0].WeatherCode = %d, want -1 for absent field", obs[0].WeatherCode)
	}
}

func TestDecodeHourly_BadTimestamp(t *testing.T) {
	p := NewOpenMeteo(43.3167, 3.4667, 1, time.UTC)

	var data hourlyResponse
	data.Hourly.Time = []string{"not-a-time"}
	if _, err := p.decodeHourly(data); err == nil {
		t.Fatal("want error for malformed timestamp")
	}
}
