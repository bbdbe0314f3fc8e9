package trainer

import (
	"errors"
	"net/http"

	"fitclub/internal/api"
	"fitclub/internal/auth"
	"fitclub/internal/interval"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Schedule godoc
// @Summary      Trainer schedule
// @Description  Returns the authenticated trainer's PT sessions and classes in a date window.
// @Tags         trainer
// @Security     BearerAuth
// @Produce      json
// @Param        from   query     string  false  "Window start (YYYY-MM-DD)"
// @Param        until  query     string  false  "Window end (YYYY-MM-DD)"
// @Success      200    {object}  ScheduleView
// @Failure      400    {object}  api.ErrorResponse
// @Failure      500    {object}  api.ErrorResponse
// @Router       /trainer/schedule [get]
func (h *Handler) Schedule(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	view, err := h.service.Schedule(c.Request.Context(), trainerID, c.Query("from"), c.Query("until"))
	if err != nil {
		if errors.Is(err, interval.ErrInvalidDate) || errors.Is(err, interval.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid date window"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch schedule"})
		return
	}

	c.JSON(http.StatusOK, view)
}
