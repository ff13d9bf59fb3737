package repository

import (
	"context"
	"errors"

	"github.com/purvjoshi04/SharedInk/internal/domain"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrRoomNotFound = errors.New("room not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrSlugTaken    = errors.New("room slug already taken")
)

// Store is the persistence boundary shared by the REST API and the
// broadcast router. The router only ever reads room existence and
// appends messages; it never stores canvas state of its own.
type Store interface {
	CreateUser(ctx context.Context, user *domain.User) error
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	CreateRoom(ctx context.Context, room *domain.Room) error
	FindRoomByID(ctx context.Context, id string) (*domain.Room, error)
	FindRoomBySlug(ctx context.Context, slug string) (*domain.Room, error)
	FindRoomByAdmin(ctx context.Context, adminID string) (*domain.Room, error)

	CreateMessage(ctx context.Context, msg *domain.Message) error
	// ListMessages returns a room's messages ordered by creation
	// sequence, oldest first. limit <= 0 means no limit.
	ListMessages(ctx context.Context, roomID string, limit int) ([]domain.Message, error)
}
