package app

import (
	"context"
	"fmt"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/adapter/csvdata"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/adapter/handler/http"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/adapter/logger"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/adapter/prometheus"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/adapter/redis"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/config"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/ports"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/services"

	redisClient "github.com/redis/go-redis/v9"
)

type App struct {
	Config       *config.Container
	Logger       ports.LoggerPort
	RedisClient  *redisClient.Client
	RedisAdapter ports.CachePort
	Fleet        *services.FleetRef
	HTTPRouter   *http.Router
}

func New(ctx context.Context, cfg *config.Container) (*App, error) {
	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env)
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Env,
	})

	// Set redis
	redisConn := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisConn.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	cacheAdapter := redis.NewRedisAdapter(redisConn)

	// Observability
	metrics := prometheus.NewPrometheusAdapter()

	// Build the object graph from the cleaned CSV feeds
	source := csvdata.FileSource{
		StationsPath:    cfg.Data.StationsPath,
		TripsPath:       cfg.Data.TripsPath,
		MaintenancePath: cfg.Data.MaintenancePath,
	}
	fleet, summary, err := services.BuildFleet(source, loggerAdapter)
	if err != nil {
		redisConn.Close()
		return nil, fmt.Errorf("failed to build fleet graph: %w", err)
	}
	metrics.RecordIngest("stations", summary.Stations.Loaded, summary.Stations.Skipped, summary.Stations.Created)
	metrics.RecordIngest("trips", summary.Trips.Loaded, summary.Trips.Skipped, summary.Trips.Created)
	metrics.RecordIngest("maintenance", summary.Maintenance.Loaded, summary.Maintenance.Skipped, summary.Maintenance.Created)
	fleetRef := services.NewFleetRef(fleet)

	// Pricing
	pricing, err := config.LoadPricing(cfg.Data.PricingPath)
	if err != nil {
		redisConn.Close()
		return nil, fmt.Errorf("failed to load pricing config: %w", err)
	}
	pricer := services.NewPricer(pricing.ToServiceConfig())

	// Services
	analyticsService := services.NewAnalyticsService(loggerAdapter, cacheAdapter)

	// HTTP Handlers
	tokenService := http.NewJWTTokenService(cfg.Token.Secret, loggerAdapter)
	stationHandler := http.NewStationHandler(fleetRef, loggerAdapter, metrics)
	tripHandler := http.NewTripHandler(fleetRef, pricer, loggerAdapter, metrics)
	fleetHandler := http.NewFleetHandler(fleetRef, analyticsService, source, loggerAdapter, metrics)
	analyticsHandler := http.NewAnalyticsHandler(fleetRef, analyticsService, loggerAdapter, metrics)

	// Init HTTP router
	router, err := http.NewRouter(
		cfg.HTTP,
		tokenService,
		stationHandler,
		tripHandler,
		fleetHandler,
		analyticsHandler,
	)
	if err != nil {
		redisConn.Close()
		return nil, fmt.Errorf("failed to initialize router: %w", err)
	}

	return &App{
		Config:       cfg,
		Logger:       loggerAdapter,
		RedisClient:  redisConn,
		RedisAdapter: cacheAdapter,
		Fleet:        fleetRef,
		HTTPRouter:   router,
	}, nil
}

// Runs all services
func (a *App) Run() error {
	listenAddr := fmt.Sprintf("%s:%s", a.Config.HTTP.URL, a.Config.HTTP.Port)
	a.Logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": listenAddr,
	})

	if err := a.HTTPRouter.Serve(listenAddr); err != nil {
		a.Logger.Error("HTTP server error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// Stops all services
func (a *App) Stop(ctx context.Context) error {
	a.Logger.Info("Shutting down gracefully...", nil)

	// Close Redis
	if err := a.RedisClient.Close(); err != nil {
		a.Logger.Error("Redis close error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	a.Logger.Info("Application stopped successfully", nil)
	return nil
}
