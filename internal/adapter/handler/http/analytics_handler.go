package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/ports"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/services"
)

type AnalyticsHandler struct {
	fleet     *services.FleetRef
	analytics *services.AnalyticsService
	logger    ports.LoggerPort
	metrics   ports.MetricsPort
}

func NewAnalyticsHandler(
	fleet *services.FleetRef,
	analytics *services.AnalyticsService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		fleet:     fleet,
		analytics: analytics,
		logger:    logger,
		metrics:   metrics,
	}
}

type TripStatsResponse struct {
	Trips           int              `json:"trips"`
	TotalDistanceKM float64          `json:"total_distance_km"`
	Durations       services.Summary `json:"durations"`
	Distances       services.Summary `json:"distances"`
}

// @Summary Аналитический отчет
// @Description Полный отчет по флоту, кешируется на 15 минут
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} services.FleetReport "Отчет"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Failure 500 {object} errorResponse "Ошибка построения отчета"
// @Router /analytics/report [get]
func (h *AnalyticsHandler) GetReport(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	_, exists := getAuthPayload(c, "authorization_payload")
	if !exists {
		h.logger.Warn("Unauthorized access attempt to GetReport", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	report, err := h.analytics.BuildReport(h.fleet.Current())
	if err != nil {
		h.logger.Error("Failed to build report", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to build report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// @Summary Статистика поездок
// @Description Сводная статистика по длительности и дистанции поездок
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} TripStatsResponse "Статистика"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Failure 404 {object} errorResponse "Нет загруженных поездок"
// @Router /analytics/stats [get]
func (h *AnalyticsHandler) GetStats(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	_, exists := getAuthPayload(c, "authorization_payload")
	if !exists {
		h.logger.Warn("Unauthorized access attempt to GetStats", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	fleet := h.fleet.Current()
	stats, err := services.ComputeTripStats(fleet.Trips())
	if err != nil {
		if errors.Is(err, services.ErrNoValues) {
			newErrorResponse(c, http.StatusNotFound, "No trips loaded")
			return
		}
		h.logger.Error("Failed to compute trip stats", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	c.JSON(http.StatusOK, TripStatsResponse{
		Trips:           len(fleet.Trips()),
		TotalDistanceKM: fleet.TotalDistance(),
		Durations:       stats.Durations,
		Distances:       stats.Distances,
	})
}
