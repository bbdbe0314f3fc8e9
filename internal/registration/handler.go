package registration

import (
	"errors"
	"net/http"
	"strconv"

	"fitclub/internal/api"
	"fitclub/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Register godoc
// @Summary      Register for class
// @Description  Takes a confirmed spot in a class, or joins the waitlist when the class is full.
// @Tags         registrations
// @Security     BearerAuth
// @Produce      json
// @Param        scheduleID  path      int  true  "Schedule ID"
// @Success      201         {object}  Registration
// @Failure      400         {object}  api.ErrorResponse
// @Failure      404         {object}  api.ErrorResponse
// @Failure      409         {object}  api.ErrorResponse
// @Router       /schedules/{scheduleID}/register [post]
func (h *Handler) Register(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	scheduleID, err := strconv.Atoi(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid schedule ID"})
		return
	}

	registration, err := h.service.Register(c.Request.Context(), memberID, scheduleID)
	if err != nil {
		switch {
		case errors.Is(err, ErrScheduleNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Schedule not found"})
		case errors.Is(err, ErrScheduleNotOpen):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Class is not open for registration"})
		case errors.Is(err, ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "You are already registered for this class"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to register"})
		}
		return
	}

	c.JSON(http.StatusCreated, registration)
}

// Cancel godoc
// @Summary      Cancel registration
// @Description  Drops the member's registration; a freed confirmed spot goes to the waitlist head.
// @Tags         registrations
// @Security     BearerAuth
// @Produce      json
// @Param        registrationID  path  int  true  "Registration ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /registrations/{registrationID} [delete]
func (h *Handler) Cancel(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	registrationID, err := strconv.Atoi(c.Param("registrationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid registration ID"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), registrationID, memberID); err != nil {
		switch {
		case errors.Is(err, ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Registration not found"})
		case errors.Is(err, ErrNotRegistrationOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only cancel your own registrations"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel registration"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Registration cancelled"})
}

// ListMine godoc
// @Summary      List my registrations
// @Description  Returns the member's upcoming registrations with class details.
// @Tags         registrations
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   RegistrationWithDetails
// @Failure      500  {object}  api.ErrorResponse
// @Router       /registrations [get]
func (h *Handler) ListMine(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	registrations, err := h.service.ListMine(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch registrations"})
		return
	}

	c.JSON(http.StatusOK, registrations)
}
