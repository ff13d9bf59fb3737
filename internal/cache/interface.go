package cache

import (
	"context"
	"errors"
	"time"

	"github.com/purvjoshi04/SharedInk/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// MessageCache caches a room's replay history in front of the
// persistence store.
type MessageCache interface {
	Get(ctx context.Context, roomID string) ([]domain.Message, error)
	Set(ctx context.Context, roomID string, msgs []domain.Message, ttl time.Duration) error
	Invalidate(ctx context.Context, roomID string) error
	Close() error
}
