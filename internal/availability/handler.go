package availability

import (
	"errors"
	"net/http"
	"strconv"

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

// AddSlot godoc
// @Summary      Add availability slot
// @Description  Adds a weekly availability window for the authenticated trainer.
// @Tags         availability
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      AddSlotRequest  true  "Availability slot"
// @Success      201      {object}  Slot
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /trainer/availability [post]
func (h *Handler) AddSlot(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req AddSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	slot, err := h.service.AddSlot(c.Request.Context(), trainerID, req)
	if err != nil {
		switch {
		case errors.Is(err, interval.ErrInvalidFormat), errors.Is(err, interval.ErrInvalidDay), errors.Is(err, interval.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid time format. Expected HH:MM (e.g. 09:00, 17:30)"})
		case errors.Is(err, interval.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "End time must be after start time"})
		case errors.Is(err, ErrSlotOverlap):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Availability slot overlaps with existing schedule"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to add availability slot"})
		}
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// ListSlots godoc
// @Summary      List availability slots
// @Description  Returns current and future availability windows of the authenticated trainer.
// @Tags         availability
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Slot
// @Failure      500  {object}  api.ErrorResponse
// @Router       /trainer/availability [get]
func (h *Handler) ListSlots(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	slots, err := h.service.ListSlots(c.Request.Context(), trainerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch availability"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// DeleteSlot godoc
// @Summary      Delete availability slot
// @Description  Deletes one of the authenticated trainer's own availability windows.
// @Tags         availability
// @Security     BearerAuth
// @Produce      json
// @Param        slotID  path      int  true  "Slot ID"
// @Success      200     {object}  api.MessageResponse
// @Failure      404     {object}  api.ErrorResponse
// @Router       /trainer/availability/{slotID} [delete]
func (h *Handler) DeleteSlot(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	slotID, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid slot ID"})
		return
	}

	if err := h.service.DeleteSlot(c.Request.Context(), slotID, trainerID); err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Availability slot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete availability slot"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Availability slot deleted"})
}
