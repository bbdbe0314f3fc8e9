package room

import (
	"errors"
	"net/http"
	"strconv"

	"fitclub/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateRoom godoc
// @Summary      Create room
// @Description  Adds a bookable room to the club.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRoomRequest  true  "Room details"
// @Success      201      {object}  Room
// @Failure      400      {object}  api.ErrorResponse
// @Router       /admin/rooms [post]
func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	room, err := h.repo.CreateRoom(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, room)
}

// ListRooms godoc
// @Summary      List rooms
// @Description  Returns all rooms; pass active=true to filter out retired ones.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        active  query     bool  false  "Only active rooms"
// @Success      200     {array}   Room
// @Failure      500     {object}  api.ErrorResponse
// @Router       /admin/rooms [get]
func (h *Handler) ListRooms(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	rooms, err := h.repo.ListRooms(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch rooms"})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// UpdateRoom godoc
// @Summary      Update room
// @Description  Updates the provided fields of a room; omitted fields are kept.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        roomID   path      int                true  "Room ID"
// @Param        request  body      UpdateRoomRequest  true  "Fields to change"
// @Success      200      {object}  Room
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /admin/rooms/{roomID} [patch]
func (h *Handler) UpdateRoom(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("roomID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid room ID"})
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	room, err := h.repo.UpdateRoom(c.Request.Context(), roomID, req)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update room"})
		return
	}

	c.JSON(http.StatusOK, room)
}
