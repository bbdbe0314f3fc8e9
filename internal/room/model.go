package room

import "time"

type Room struct {
	ID        int       `db:"id" json:"id"`
	RoomName  string    `db:"room_name" json:"room_name"`
	RoomType  string    `db:"room_type" json:"room_type"`
	Capacity  int       `db:"capacity" json:"capacity"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateRoomRequest struct {
	RoomName string `json:"room_name" binding:"required"`
	RoomType string `json:"room_type" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

type UpdateRoomRequest struct {
	RoomName *string `json:"room_name"`
	RoomType *string `json:"room_type"`
	Capacity *int    `json:"capacity"`
	IsActive *bool   `json:"is_active"`
}
