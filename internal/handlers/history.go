package handlers

import (
	"errors"
	"net/http"

	"github.com/amblelog/amble/backend/internal/apierror"
	"github.com/amblelog/amble/backend/internal/logger"
	"github.com/amblelog/amble/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// HistoryHandler handles history and streak HTTP requests
type HistoryHandler struct {
	historyService service.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// GetHistory handles GET /api/v1/history?period=week|month|year
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	period := c.DefaultQuery("period", "week")

	history, err := h.historyService.GetHistory(c.Request.Context(), userID.(string), period)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		switch {
		case errors.Is(err, service.ErrInvalidPeriod):
			apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
				{Field: "period", Message: "must be one of week, month, year", Code: "invalid_value"},
			}))
		case errors.Is(err, service.ErrProfileNotFound):
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "profile", ""))
		default:
			logger.Ctx(c.Request.Context()).Error("failed to get history", logger.Err(err))
			apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		}
		return
	}

	c.JSON(http.StatusOK, history)
}

// GetStreak handles GET /api/v1/streak
func (h *HistoryHandler) GetStreak(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	streak, err := h.historyService.GetStreak(c.Request.Context(), userID.(string))
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to get streak", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, streak)
}
