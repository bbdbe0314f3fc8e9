package room

import "context"

type Repository interface {
	CreateRoom(ctx context.Context, req CreateRoomRequest) (*Room, error)
	GetRoom(ctx context.Context, id int) (*Room, error)
	ListRooms(ctx context.Context, activeOnly bool) ([]Room, error)
	UpdateRoom(ctx context.Context, id int, req UpdateRoomRequest) (*Room, error)
}
