package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/capagde/sailcast/internal/api"
	"github.com/capagde/sailcast/internal/ingest"
	"github.com/capagde/sailcast/internal/store"
)

// Agde harbour.
const (
	defaultLat = 43.3167
	defaultLon = 3.4667
)

type cli struct {
	EnvFile kongdotenv.ENVFileConfig `kong:"optional,name=env-file,help='Path to an optional .env file.'"`

	DB              string        `help:"Path to the SQLite cache." default:"data/sailcast.db" env:"SAILCAST_DB"`
	Listen          string        `help:"HTTP listen address." default:":8080" env:"SAILCAST_LISTEN"`
	RefreshInterval time.Duration `help:"Forecast refresh interval." default:"1h" env:"SAILCAST_REFRESH_INTERVAL"`
	Timezone        string        `help:"IANA timezone for local-day bucketing." default:"Europe/Paris" env:"SAILCAST_TZ"`
	Lat             float64       `help:"Forecast latitude." default:"43.3167" env:"SAILCAST_LAT"`
	Lon             float64       `help:"Forecast longitude." default:"3.4667" env:"SAILCAST_LON"`
	ForecastDays    int           `help:"Forecast horizon in days." default:"7" env:"SAILCAST_FORECAST_DAYS"`
	Once            bool          `help:"Refresh once and exit."`
	NoPoll          bool          `help:"Disable periodic refresh (server only)."`
	Synthetic       bool          `help:"Serve generated data without calling the provider."`
}

func main() {
	var flags cli
	kong.Parse(&flags,
		kong.Name("sailcast"),
		kong.Description("Sailing-condition forecast service for the Agde charter calendar."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	db, err := sql.Open("sqlite", flags.DB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	loc, err := time.LoadLocation(flags.Timezone)
	if err != nil {
		log.Printf("warning: could not load timezone %s, using UTC: %v", flags.Timezone, err)
		loc = time.UTC
	}

	st := store.New(db, loc)
	if err := st.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("database migrated")

	provider := ingest.NewOpenMeteo(flags.Lat, flags.Lon, flags.ForecastDays, loc)
	scheduler := ingest.NewScheduler(st, provider, loc, flags.RefreshInterval, flags.ForecastDays)
	scheduler.SetSynthetic(flags.Synthetic)
	server := api.NewServer(st, flags.Listen, loc)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if flags.Once {
		log.Println("running single refresh")
		if err := scheduler.Refresh(ctx); err != nil {
			log.Fatalf("refresh: %v", err)
		}
		log.Println("done")
		return
	}

	if !flags.NoPoll {
		go scheduler.Run(ctx)
	} else {
		log.Println("polling disabled (--no-poll)")
	}

	log.Printf("starting server on %s", flags.Listen)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
