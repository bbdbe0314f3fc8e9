package room

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrRoomNotFound = errors.New("room not found")

const roomColumns = `id, room_name, room_type, capacity, is_active, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateRoom(ctx context.Context, req CreateRoomRequest) (*Room, error) {
	query := `
		INSERT INTO rooms (room_name, room_type, capacity)
		VALUES ($1, $2, $3)
		RETURNING ` + roomColumns

	var room Room
	err := r.db.GetContext(ctx, &room, query, req.RoomName, req.RoomType, req.Capacity)
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *repository) GetRoom(ctx context.Context, id int) (*Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	var room Room
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	return &room, nil
}

func (r *repository) ListRooms(ctx context.Context, activeOnly bool) ([]Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY room_name`

	var rooms []Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, err
	}

	return rooms, nil
}

func (r *repository) UpdateRoom(ctx context.Context, id int, req UpdateRoomRequest) (*Room, error) {
	query := `
		UPDATE rooms
		SET room_name = COALESCE($2, room_name),
		    room_type = COALESCE($3, room_type),
		    capacity = COALESCE($4, capacity),
		    is_active = COALESCE($5, is_active)
		WHERE id = $1
		RETURNING ` + roomColumns

	var room Room
	err := r.db.GetContext(ctx, &room, query, id, req.RoomName, req.RoomType, req.Capacity, req.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	return &room, nil
}
