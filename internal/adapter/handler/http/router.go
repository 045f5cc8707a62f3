package http

import (
	"net/http"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/config"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/ports"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	router *gin.Engine
}

func NewRouter(
	cfg *config.HTTP,
	tokenService ports.TokenService,
	stationHandler *StationHandler,
	tripHandler *TripHandler,
	fleetHandler *FleetHandler,
	analyticsHandler *AnalyticsHandler,
) (*Router, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigins},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))
	router.Use(RequestIDMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Stations routes
	stations := router.Group("/stations")
	stations.Use(AuthMiddleware(tokenService))
	{
		stations.GET("", stationHandler.ListStations)
		stations.GET("/search", stationHandler.SearchStations)
	}
	// Trips routes
	trips := router.Group("/trips")
	trips.Use(AuthMiddleware(tokenService))
	{
		trips.GET("", tripHandler.ListTrips)
		trips.GET("/:id/cost", tripHandler.GetTripCost)
	}
	// Fleet collections
	bikes := router.Group("/bikes")
	bikes.Use(AuthMiddleware(tokenService))
	{
		bikes.GET("", fleetHandler.ListBikes)
	}
	users := router.Group("/users")
	users.Use(AuthMiddleware(tokenService))
	{
		users.GET("", fleetHandler.ListUsers)
	}
	// Analytics routes
	analytics := router.Group("/analytics")
	analytics.Use(AuthMiddleware(tokenService))
	{
		analytics.GET("/report", analyticsHandler.GetReport)
		analytics.GET("/stats", analyticsHandler.GetStats)
	}
	// Admin routes
	admin := router.Group("/admin")
	admin.Use(AuthMiddleware(tokenService))
	{
		admin.POST("/reload", fleetHandler.Reload)
	}
	return &Router{router: router}, nil
}

func (r *Router) Serve(addr string) error {
	return r.router.Run(addr)
}

func (r *Router) Engine() *gin.Engine {
	return r.router
}
