package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/amblelog/amble/backend/internal/apierror"
	"github.com/amblelog/amble/backend/internal/logger"
	"github.com/amblelog/amble/backend/internal/models"
	"github.com/amblelog/amble/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// WalkHandler handles walk-related HTTP requests
type WalkHandler struct {
	walkService service.WalkService
}

// NewWalkHandler creates a new walk handler
func NewWalkHandler(walkService service.WalkService) *WalkHandler {
	return &WalkHandler{walkService: walkService}
}

// CreateWalk handles POST /api/v1/walks
func (h *WalkHandler) CreateWalk(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	var req models.CreateWalkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), err.Error(), "Invalid request body"))
		return
	}

	walk, err := h.walkService.CreateWalk(c.Request.Context(), userID.(string), &req)
	if err != nil {
		h.writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, walk)
}

// GetWalks handles GET /api/v1/walks?start_date=...&end_date=...
func (h *WalkHandler) GetWalks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	startDate, endDate, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	walks, err := h.walkService.ListWalks(c.Request.Context(), userID.(string), startDate, endDate)
	if err != nil {
		h.writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"walks": walks})
}

// GetWalk handles GET /api/v1/walks/:id
func (h *WalkHandler) GetWalk(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	walkID := c.Param("id")
	walk, err := h.walkService.GetWalk(c.Request.Context(), userID.(string), walkID)
	if err != nil {
		h.writeServiceError(c, err, walkID)
		return
	}

	c.JSON(http.StatusOK, walk)
}

// DeleteWalk handles DELETE /api/v1/walks/:id
func (h *WalkHandler) DeleteWalk(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	walkID := c.Param("id")
	if err := h.walkService.DeleteWalk(c.Request.Context(), userID.(string), walkID); err != nil {
		h.writeServiceError(c, err, walkID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// DeleteWalks handles POST /api/v1/walks/batch-delete
func (h *WalkHandler) DeleteWalks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	var req models.DeleteWalksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), err.Error(), "Invalid request body"))
		return
	}

	if err := h.walkService.DeleteWalks(c.Request.Context(), userID.(string), req.WalkIDs); err != nil {
		h.writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "deleted",
		"deleted": len(req.WalkIDs),
	})
}

// parseDateRange reads the optional start_date/end_date query parameters,
// defaulting to the last 30 days
func (h *WalkHandler) parseDateRange(c *gin.Context) (startDate, endDate time.Time, ok bool) {
	endDate = time.Now().UTC()
	startDate = endDate.AddDate(0, 0, -30)

	if s := c.Query("start_date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), []apierror.FieldError{
				{Field: "start_date", Message: "must be a YYYY-MM-DD date", Code: "invalid_format"},
			}))
			return time.Time{}, time.Time{}, false
		}
		startDate = parsed
	}

	if s := c.Query("end_date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), []apierror.FieldError{
				{Field: "end_date", Message: "must be a YYYY-MM-DD date", Code: "invalid_format"},
			}))
			return time.Time{}, time.Time{}, false
		}
		endDate = parsed
	}

	return startDate, endDate, true
}

// writeServiceError maps service errors onto problem-details responses
func (h *WalkHandler) writeServiceError(c *gin.Context, err error, resourceID string) {
	requestID := apierror.GetRequestID(c)

	switch {
	case errors.Is(err, service.ErrWalkNotFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "walk", resourceID))
	case errors.Is(err, service.ErrProfileNotFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "profile", ""))
	case errors.Is(err, service.ErrInvalidDate):
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "date", Message: "must be a YYYY-MM-DD date", Code: "invalid_format"},
		}))
	default:
		logger.Ctx(c.Request.Context()).Error("walk request failed", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}
