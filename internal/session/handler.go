package session

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

// BookSession godoc
// @Summary      Book PT session
// @Description  Books a personal training session for the authenticated member.
// @Tags         sessions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      BookRequest  true  "Booking details"
// @Success      201      {object}  Session
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /sessions [post]
func (h *Handler) BookSession(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	session, err := h.service.BookSession(c.Request.Context(), memberID, req)
	if err != nil {
		switch {
		case errors.Is(err, interval.ErrInvalidFormat), errors.Is(err, interval.ErrInvalidRange), errors.Is(err, interval.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid time range"})
		case errors.Is(err, ErrTrainerNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Trainer not found"})
		case errors.Is(err, ErrMemberDoubleBooked):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "You already have a session booked at this time"})
		case errors.Is(err, ErrTrainerUnavailable):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Trainer is already booked at this time"})
		case errors.Is(err, ErrRoomUnavailable):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Room is already booked at this time"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to book session"})
		}
		return
	}

	c.JSON(http.StatusCreated, session)
}

// CancelSession godoc
// @Summary      Cancel PT session
// @Description  Cancels one of the authenticated member's scheduled sessions.
// @Tags         sessions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        sessionID  path      int            true   "Session ID"
// @Param        request    body      CancelRequest  false  "Cancellation reason"
// @Success      200        {object}  Session
// @Failure      400        {object}  api.ErrorResponse
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /sessions/{sessionID}/cancel [post]
func (h *Handler) CancelSession(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	sessionID, err := strconv.Atoi(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session ID"})
		return
	}

	var req CancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
	}

	session, err := h.service.CancelSession(c.Request.Context(), sessionID, memberID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Session not found"})
		case errors.Is(err, ErrNotSessionOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only cancel your own sessions"})
		case errors.Is(err, ErrNotCancellable):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Only scheduled sessions can be cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel session"})
		}
		return
	}

	c.JSON(http.StatusOK, session)
}

// ListUpcoming godoc
// @Summary      List upcoming PT sessions
// @Description  Returns the authenticated member's scheduled future sessions.
// @Tags         sessions
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Session
// @Failure      500  {object}  api.ErrorResponse
// @Router       /sessions/upcoming [get]
func (h *Handler) ListUpcoming(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	sessions, err := h.service.ListUpcoming(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch sessions"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}
