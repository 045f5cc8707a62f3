package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/ports"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/services"
)

type StationHandler struct {
	fleet   *services.FleetRef
	logger  ports.LoggerPort
	metrics ports.MetricsPort
}

func NewStationHandler(
	fleet *services.FleetRef,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *StationHandler {
	return &StationHandler{
		fleet:   fleet,
		logger:  logger,
		metrics: metrics,
	}
}

type StationInfo struct {
	StationID string  `json:"station_id"`
	Name      string  `json:"name"`
	Capacity  int     `json:"capacity"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type GetStationsResponse struct {
	Stations []StationInfo `json:"stations"`
	Count    int           `json:"count"`
}

func stationInfo(station *domain.Station) StationInfo {
	return StationInfo{
		StationID: station.StationID,
		Name:      station.Name,
		Capacity:  station.Capacity,
		Latitude:  station.Latitude,
		Longitude: station.Longitude,
	}
}

// @Summary Список станций
// @Description Получение всех станций в порядке загрузки
// @Tags stations
// @Security BearerAuth
// @Produce json
// @Success 200 {object} GetStationsResponse "Список станций"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Router /stations [get]
func (h *StationHandler) ListStations(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	_, exists := getAuthPayload(c, "authorization_payload")
	if !exists {
		h.logger.Warn("Unauthorized access attempt to ListStations", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stations := h.fleet.Current().Stations()
	infos := make([]StationInfo, len(stations))
	for i, station := range stations {
		infos[i] = stationInfo(station)
	}

	c.JSON(http.StatusOK, GetStationsResponse{
		Stations: infos,
		Count:    len(infos),
	})
}

// @Summary Поиск станции
// @Description Бинарный поиск станции по id или названию
// @Tags stations
// @Security BearerAuth
// @Produce json
// @Param q query string true "Запрос" example:"ST100"
// @Param by query string false "Ключ поиска: station_id или station_name" example:"station_id"
// @Success 200 {object} StationInfo "Станция найдена"
// @Failure 400 {object} errorResponse "Неверный ключ поиска"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Failure 404 {object} errorResponse "Станция не найдена"
// @Router /stations/search [get]
func (h *StationHandler) SearchStations(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	_, exists := getAuthPayload(c, "authorization_payload")
	if !exists {
		h.logger.Warn("Unauthorized access attempt to SearchStations", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := c.Query("q")
	if query == "" {
		newErrorResponse(c, http.StatusBadRequest, "Query parameter q is required")
		return
	}
	by := c.Query("by")

	station, err := h.fleet.Current().SearchStations(query, by)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidSearchKey):
			h.logger.Warn("Invalid station search key", map[string]interface{}{
				"by": by,
			})
			newErrorResponse(c, http.StatusBadRequest, "Invalid search key")
		case errors.Is(err, services.ErrStationNotFound):
			newErrorResponse(c, http.StatusNotFound, "Station not found")
		default:
			h.logger.Error("Failed to search stations", map[string]interface{}{
				"error": err.Error(),
				"query": query,
			})
			newErrorResponse(c, http.StatusInternalServerError, "Search failed")
		}
		return
	}

	c.JSON(http.StatusOK, stationInfo(station))
}
