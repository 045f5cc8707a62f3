package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/ports"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/services"
)

type TripHandler struct {
	fleet   *services.FleetRef
	pricer  *services.Pricer
	logger  ports.LoggerPort
	metrics ports.MetricsPort
}

func NewTripHandler(
	fleet *services.FleetRef,
	pricer *services.Pricer,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *TripHandler {
	return &TripHandler{
		fleet:   fleet,
		pricer:  pricer,
		logger:  logger,
		metrics: metrics,
	}
}

type TripInfo struct {
	TripID          string    `json:"trip_id"`
	UserID          string    `json:"user_id"`
	BikeID          string    `json:"bike_id"`
	StartStationID  string    `json:"start_station_id"`
	EndStationID    string    `json:"end_station_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes float64   `json:"duration_minutes"`
	DistanceKM      float64   `json:"distance_km"`
	Status          string    `json:"status"`
}

type GetTripsResponse struct {
	Trips []TripInfo `json:"trips"`
	Count int        `json:"count"`
}

type TripCostResponse struct {
	TripID     string  `json:"trip_id"`
	UserType   string  `json:"user_type"`
	DistanceKM float64 `json:"distance_km"`
	Peak       bool    `json:"peak"`
	Cost       float64 `json:"cost"`
}

func tripInfo(trip *domain.Trip) TripInfo {
	return TripInfo{
		TripID:          trip.TripID,
		UserID:          trip.User.UserID(),
		BikeID:          trip.Bike.BikeID(),
		StartStationID:  trip.StartStation.StationID,
		EndStationID:    trip.EndStation.StationID,
		StartTime:       trip.StartTime,
		EndTime:         trip.EndTime,
		DurationMinutes: trip.DurationMinutes(),
		DistanceKM:      trip.DistanceKM,
		Status:          string(trip.Status),
	}
}

// @Summary Список поездок
// @Description Поездки в порядке загрузки либо отсортированные по дистанции
// @Tags trips
// @Security BearerAuth
// @Produce json
// @Param sort query string false "Сортировка: distance" example:"distance"
// @Param order query string false "Порядок: asc или desc" example:"asc"
// @Param limit query int false "Максимум записей" example:"50"
// @Success 200 {object} GetTripsResponse "Список поездок"
// @Failure 400 {object} errorResponse "Неверные параметры"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Router /trips [get]
func (h *TripHandler) ListTrips(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	_, exists := getAuthPayload(c, "authorization_payload")
	if !exists {
		h.logger.Warn("Unauthorized access attempt to ListTrips", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	fleet := h.fleet.Current()
	trips := fleet.Trips()

	switch c.Query("sort") {
	case "":
	case "distance":
		order := c.DefaultQuery("order", "asc")
		if order != "asc" && order != "desc" {
			newErrorResponse(c, http.StatusBadRequest, "Invalid order value")
			return
		}
		trips = fleet.SortTripsByDistance(order == "desc")
	default:
		newErrorResponse(c, http.StatusBadRequest, "Invalid sort value")
		return
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			newErrorResponse(c, http.StatusBadRequest, "Invalid limit value")
			return
		}
		if limit < len(trips) {
			trips = trips[:limit]
		}
	}

	infos := make([]TripInfo, len(trips))
	for i, trip := range trips {
		infos[i] = tripInfo(trip)
	}

	c.JSON(http.StatusOK, GetTripsResponse{
		Trips: infos,
		Count: len(infos),
	})
}

// @Summary Стоимость поездки
// @Description Расчет стоимости поездки по тарифу её пользователя
// @Tags trips
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID поездки" example:"T1001"
// @Param peak query bool false "Принудительно применить пиковый тариф" example:"false"
// @Success 200 {object} TripCostResponse "Стоимость рассчитана"
// @Failure 400 {object} errorResponse "Неверные параметры"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Failure 404 {object} errorResponse "Поездка не найдена"
// @Router /trips/{id}/cost [get]
func (h *TripHandler) GetTripCost(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	tripID := c.Param("id")

	_, exists := getAuthPayload(c, "authorization_payload")
	if !exists {
		h.logger.Warn("Unauthorized access attempt to GetTripCost", map[string]interface{}{
			"trip_id": tripID,
			"ip":      c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	forcePeak := false
	if raw := c.Query("peak"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			newErrorResponse(c, http.StatusBadRequest, "Invalid peak value")
			return
		}
		forcePeak = parsed
	}

	trip, ok := h.fleet.Current().TripByID(tripID)
	if !ok {
		newErrorResponse(c, http.StatusNotFound, "Trip not found")
		return
	}

	cost := h.pricer.TripCost(trip, forcePeak)
	peak := forcePeak || h.pricer.IsPeakHour(trip.StartTime.Hour())

	c.JSON(http.StatusOK, TripCostResponse{
		TripID:     trip.TripID,
		UserType:   string(trip.User.UserType()),
		DistanceKM: trip.DistanceKM,
		Peak:       peak,
		Cost:       cost,
	})
}
