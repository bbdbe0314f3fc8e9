package class

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

// ListUpcoming godoc
// @Summary      List upcoming classes
// @Description  Returns scheduled classes with remaining spots and the member's registration state.
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   UpcomingSchedule
// @Failure      500  {object}  api.ErrorResponse
// @Router       /classes/upcoming [get]
func (h *Handler) ListUpcoming(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	schedules, err := h.service.ListUpcoming(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch classes"})
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// CreateClass godoc
// @Summary      Create class
// @Description  Creates a reusable group class template.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateClassRequest  true  "Class details"
// @Success      201      {object}  GroupClass
// @Failure      400      {object}  api.ErrorResponse
// @Router       /admin/classes [post]
func (h *Handler) CreateClass(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	class, err := h.service.CreateClass(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create class"})
		return
	}

	c.JSON(http.StatusCreated, class)
}

// ListClasses godoc
// @Summary      List classes
// @Description  Returns all group class templates, active and inactive.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   GroupClass
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/classes [get]
func (h *Handler) ListClasses(c *gin.Context) {
	classes, err := h.service.ListClasses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch classes"})
		return
	}

	c.JSON(http.StatusOK, classes)
}

// UpdateClass godoc
// @Summary      Update class
// @Description  Updates the provided fields of a class template; omitted fields are kept.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        classID  path      int                 true  "Class ID"
// @Param        request  body      UpdateClassRequest  true  "Fields to change"
// @Success      200      {object}  GroupClass
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /admin/classes/{classID} [patch]
func (h *Handler) UpdateClass(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	var req UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	class, err := h.service.UpdateClass(c.Request.Context(), classID, req)
	if err != nil {
		if errors.Is(err, ErrClassNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update class"})
		return
	}

	c.JSON(http.StatusOK, class)
}

// CreateSchedule godoc
// @Summary      Schedule a class
// @Description  Puts a class on the calendar in a room with a trainer.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateScheduleRequest  true  "Schedule details"
// @Success      201      {object}  Schedule
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /admin/schedules [post]
func (h *Handler) CreateSchedule(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	schedule, err := h.service.CreateSchedule(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, interval.ErrInvalidFormat), errors.Is(err, interval.ErrInvalidRange), errors.Is(err, interval.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid time range"})
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
		case errors.Is(err, ErrTrainerNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Trainer not found"})
		case errors.Is(err, ErrRoomUnavailable):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Room is already booked at this time"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to schedule class"})
		}
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

// DeleteSchedule godoc
// @Summary      Delete class schedule
// @Description  Removes a schedule that nobody has registered for.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        scheduleID  path  int  true  "Schedule ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/schedules/{scheduleID} [delete]
func (h *Handler) DeleteSchedule(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid schedule ID"})
		return
	}

	if err := h.service.DeleteSchedule(c.Request.Context(), scheduleID); err != nil {
		switch {
		case errors.Is(err, ErrScheduleNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Schedule not found"})
		case errors.Is(err, ErrHasRegistrations):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Schedule has registrations; cancel it instead"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete schedule"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Schedule deleted"})
}

// CancelSchedule godoc
// @Summary      Cancel class schedule
// @Description  Marks a scheduled class as cancelled with a reason.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        scheduleID  path      int                    true  "Schedule ID"
// @Param        request     body      CancelScheduleRequest  true  "Cancellation reason"
// @Success      200         {object}  Schedule
// @Failure      400         {object}  api.ErrorResponse
// @Failure      404         {object}  api.ErrorResponse
// @Router       /admin/schedules/{scheduleID}/cancel [post]
func (h *Handler) CancelSchedule(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid schedule ID"})
		return
	}

	var req CancelScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	schedule, err := h.service.CancelSchedule(c.Request.Context(), scheduleID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, ErrScheduleNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Schedule not found"})
		case errors.Is(err, ErrNotCancellable):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Only scheduled classes can be cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel schedule"})
		}
		return
	}

	c.JSON(http.StatusOK, schedule)
}
