package config

import (
	"os"

	"github.com/joho/godotenv"
)

type (
	Container struct {
		App   *App
		Token *Token
		HTTP  *HTTP
		Redis *Redis
		Data  *Data
	}

	App struct {
		Name string
		Env  string
	}

	Token struct {
		Secret   string
		Duration string
	}

	HTTP struct {
		Env            string
		Port           string
		AllowedOrigins string
		URL            string
	}

	Redis struct {
		Address  string
		Password string
	}

	// Data points at the CSV feeds and the report output. Raw files go
	// through the cleaner; the graph is built from the cleaned ones.
	Data struct {
		RawStationsPath    string
		RawTripsPath       string
		RawMaintenancePath string

		StationsPath    string
		TripsPath       string
		MaintenancePath string

		ReportDir   string
		PricingPath string
	}
)

func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		err := godotenv.Load()
		if err != nil {
			return nil, err
		}
	}

	app := &App{
		Name: os.Getenv("APP_NAME"),
		Env:  os.Getenv("APP_ENV"),
	}

	token := &Token{
		Secret:   os.Getenv("TOKEN_SECRET"),
		Duration: os.Getenv("TOKEN_DURATION"),
	}

	http := &HTTP{
		Port:           os.Getenv("HTTP_PORT"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		URL:            os.Getenv("HTTP_URL"),
		Env:            os.Getenv("APP_ENV"),
	}

	redis := &Redis{
		Address:  os.Getenv("REDIS_ADDRESS"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	data := &Data{
		RawStationsPath:    envOrDefault("RAW_STATIONS_CSV", "data/raw/stations.csv"),
		RawTripsPath:       envOrDefault("RAW_TRIPS_CSV", "data/raw/trips.csv"),
		RawMaintenancePath: envOrDefault("RAW_MAINTENANCE_CSV", "data/raw/maintenance.csv"),
		StationsPath:       envOrDefault("STATIONS_CSV", "data/cleaned/stations.csv"),
		TripsPath:          envOrDefault("TRIPS_CSV", "data/cleaned/trips.csv"),
		MaintenancePath:    envOrDefault("MAINTENANCE_CSV", "data/cleaned/maintenance.csv"),
		ReportDir:          envOrDefault("REPORT_DIR", "reports"),
		PricingPath:        envOrDefault("PRICING_CONFIG", "configs/pricing.yaml"),
	}

	return &Container{
		App:   app,
		Token: token,
		HTTP:  http,
		Redis: redis,
		Data:  data,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
