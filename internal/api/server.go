package api

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/capagde/sailcast/internal/events"
	"github.com/capagde/sailcast/internal/ingest"
	"github.com/capagde/sailcast/internal/models"
	"github.com/capagde/sailcast/internal/sailing"
	"github.com/capagde/sailcast/internal/store"
)

//go:embed templates/*
var templateFS embed.FS

// staleAfter marks the cache degraded when the last refresh is older than
// this.
const staleAfter = 3 * time.Hour

type Server struct {
	store *store.Store
	addr  string
	loc   *time.Location
	tmpl  *template.Template
}

func NewServer(st *store.Store, addr string, loc *time.Location) *Server {
	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
	return &Server{store: st, addr: addr, loc: loc, tmpl: tmpl}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/forecast", s.handleAPIForecast)
	mux.HandleFunc("/api/day", s.handleAPIDay)
	mux.HandleFunc("/api/events", s.handleAPIEvents)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) getCalendarData() (*CalendarData, error) {
	days, source, fetchedAt, err := s.store.GetForecastDays()
	if err != nil {
		return nil, err
	}

	today := time.Now().In(s.loc).Format("2006-01-02")
	data := &CalendarData{
		Source:    source,
		Synthetic: source == ingest.SourceSynthetic,
		FetchedAt: fetchedAt,
	}
	for _, d := range days {
		data.Days = append(data.Days, buildCalendarDay(d, today))
	}
	return data, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data, err := s.getCalendarData()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		log.Printf("api: template error: %v", err)
	}
}

type forecastResponse struct {
	Source    string                `json:"source"`
	FetchedAt time.Time             `json:"fetched_at"`
	Days      []models.DailySummary `json:"days"`
}

func (s *Server) handleAPIForecast(w http.ResponseWriter, r *http.Request) {
	days, source, fetchedAt, err := s.store.GetForecastDays()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(forecastResponse{
		Source:    source,
		FetchedAt: fetchedAt,
		Days:      days,
	})
}

type dayResponse struct {
	Day       models.DailySummary `json:"day"`
	Condition sailing.Condition   `json:"condition"`
	ColorBand string              `json:"color_band"`
	Event     *events.Event       `json:"event,omitempty"`
}

func (s *Server) handleAPIDay(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	parsed, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		http.Error(w, "invalid or missing date parameter", http.StatusBadRequest)
		return
	}

	day, err := s.store.GetDay(date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if day == nil {
		http.Error(w, "date outside forecast horizon", http.StatusNotFound)
		return
	}

	cond := sailing.Classify(sailing.DailyMetrics(*day))
	resp := dayResponse{
		Day:       *day,
		Condition: cond,
		ColorBand: sailing.ColorBand(cond.Beaufort.Scale),
	}
	if ev, ok := events.SpecialEvent(parsed); ok {
		resp.Event = &ev
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type dateEvent struct {
	Date string `json:"date"`
	events.Event
}

func (s *Server) handleAPIEvents(w http.ResponseWriter, r *http.Request) {
	from, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("from"), s.loc)
	if err != nil {
		http.Error(w, "invalid or missing from parameter", http.StatusBadRequest)
		return
	}
	to, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("to"), s.loc)
	if err != nil {
		http.Error(w, "invalid or missing to parameter", http.StatusBadRequest)
		return
	}
	if to.Before(from) || to.Sub(from) > 366*24*time.Hour {
		http.Error(w, "invalid date range", http.StatusBadRequest)
		return
	}

	var list []dateEvent
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if ev, ok := events.SpecialEvent(d); ok {
			list = append(list, dateEvent{Date: d.Format("2006-01-02"), Event: ev})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

type healthStatus struct {
	Status    string    `json:"status"`
	Source    string    `json:"source,omitempty"`
	FetchedAt time.Time `json:"fetched_at,omitempty"`
	DayCount  int       `json:"day_count"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state, err := s.store.GetRefreshState()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
		return
	}

	health := healthStatus{Status: "ok"}
	if state == nil {
		health.Status = "degraded"
	} else {
		health.Source = state.Source
		health.FetchedAt = state.FetchedAt
		health.DayCount = state.DayCount
		if state.Source == ingest.SourceSynthetic || time.Since(state.FetchedAt) > staleAfter {
			health.Status = "degraded"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if health.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(health); err != nil {
		log.Printf("api: health: write response: %v", err)
	}
}
