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

// FleetHandler serves the entity collections and the admin reload. A
// reload builds a whole new graph from the configured feeds and swaps
// it in atomically.
type FleetHandler struct {
	fleet     *services.FleetRef
	analytics *services.AnalyticsService
	source    ports.RowSource
	logger    ports.LoggerPort
	metrics   ports.MetricsPort
}

func NewFleetHandler(
	fleet *services.FleetRef,
	analytics *services.AnalyticsService,
	source ports.RowSource,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *FleetHandler {
	return &FleetHandler{
		fleet:     fleet,
		analytics: analytics,
		source:    source,
		logger:    logger,
		metrics:   metrics,
	}
}

type BikeInfo struct {
	BikeID string `json:"bike_id"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

type GetBikesResponse struct {
	Bikes []BikeInfo `json:"bikes"`
	Count int        `json:"count"`
}

type UserInfo struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"`
	Email  string `json:"email"`
}

type GetUsersResponse struct {
	Users []UserInfo `json:"users"`
	Count int        `json:"count"`
}

// @Summary Список байков
// @Description Получение всех байков флота
// @Tags fleet
// @Security BearerAuth
// @Produce json
// @Param active query bool false "Только доступные байки" example:"true"
// @Success 200 {object} GetBikesResponse "Список байков"
// @Failure 400 {object} errorResponse "Неверные параметры"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Router /bikes [get]
func (h *FleetHandler) ListBikes(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	_, exists := getAuthPayload(c, "authorization_payload")
	if !exists {
		h.logger.Warn("Unauthorized access attempt to ListBikes", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	activeOnly := false
	if raw := c.Query("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			newErrorResponse(c, http.StatusBadRequest, "Invalid active value")
			return
		}
		activeOnly = parsed
	}

	bikes := h.fleet.Current().Bikes()
	infos := make([]BikeInfo, 0, len(bikes))
	for _, bike := range bikes {
		if activeOnly && bike.BikeStatus() == domain.BikeMaintenance {
			continue
		}
		infos = append(infos, BikeInfo{
			BikeID: bike.BikeID(),
			Type:   string(bike.BikeType()),
			Status: string(bike.BikeStatus()),
		})
	}

	c.JSON(http.StatusOK, GetBikesResponse{
		Bikes: infos,
		Count: len(infos),
	})
}

// @Summary Список пользователей
// @Description Получение всех пользователей флота
// @Tags fleet
// @Security BearerAuth
// @Produce json
// @Success 200 {object} GetUsersResponse "Список пользователей"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Router /users [get]
func (h *FleetHandler) ListUsers(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	_, exists := getAuthPayload(c, "authorization_payload")
	if !exists {
		h.logger.Warn("Unauthorized access attempt to ListUsers", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	users := h.fleet.Current().Users()
	infos := make([]UserInfo, len(users))
	for i, user := range users {
		infos[i] = UserInfo{
			UserID: user.UserID(),
			Type:   string(user.UserType()),
			Email:  user.UserEmail(),
		}
	}

	c.JSON(http.StatusOK, GetUsersResponse{
		Users: infos,
		Count: len(infos),
	})
}

// @Summary Перезагрузить граф
// @Description Пересборка графа из CSV-файлов и сброс кеша отчета
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} successResponse "Граф перезагружен"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Failure 403 {object} errorResponse "Доступ запрещен"
// @Failure 500 {object} errorResponse "Ошибка перезагрузки"
// @Router /admin/reload [post]
func (h *FleetHandler) Reload(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, "authorization_payload")
	if !exists {
		h.logger.Warn("Unauthorized access attempt to Reload", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if payload.Role != domain.Admin {
		h.logger.Warn("Access denied to reload", map[string]interface{}{
			"requester_id": payload.UserID.String(),
			"role":         string(payload.Role),
		})
		newErrorResponse(c, http.StatusForbidden, "Access denied")
		return
	}

	fleet, summary, err := services.BuildFleet(h.source, h.logger)
	if err != nil {
		h.logger.Error("Failed to rebuild fleet", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Reload failed")
		return
	}

	h.fleet.Replace(fleet)
	h.analytics.InvalidateReport()

	h.logger.Info("Fleet reloaded", map[string]interface{}{
		"stations": summary.Stations.Loaded,
		"trips":    summary.Trips.Loaded,
		"admin_id": payload.UserID.String(),
	})

	newSuccessResponse(c, http.StatusOK, "Fleet reloaded successfully", summary)
}
