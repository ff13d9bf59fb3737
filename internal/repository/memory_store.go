package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/purvjoshi04/SharedInk/internal/domain"
)

// MemoryStore is an in-memory Store used by tests and by the broadcast
// server when no database is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]domain.User // keyed by email
	rooms    map[string]domain.Room // keyed by id
	messages map[string][]domain.Message
	nextID   int64
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]domain.User),
		rooms:    make(map[string]domain.Room),
		messages: make(map[string][]domain.Message),
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Email]; ok {
		return ErrEmailTaken
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	s.users[user.Email] = *user
	return nil
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (s *MemoryStore) CreateRoom(_ context.Context, room *domain.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rooms {
		if r.Slug == room.Slug {
			return ErrSlugTaken
		}
	}
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	room.CreatedAt = time.Now()
	s.rooms[room.ID] = *room
	return nil
}

func (s *MemoryStore) FindRoomByID(_ context.Context, id string) (*domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return &r, nil
}

func (s *MemoryStore) FindRoomBySlug(_ context.Context, slug string) (*domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rooms {
		if r.Slug == slug {
			room := r
			return &room, nil
		}
	}
	return nil, ErrRoomNotFound
}

func (s *MemoryStore) FindRoomByAdmin(_ context.Context, adminID string) (*domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *domain.Room
	for _, r := range s.rooms {
		if r.AdminID != adminID {
			continue
		}
		if best == nil || r.CreatedAt.Before(best.CreatedAt) {
			room := r
			best = &room
		}
	}
	if best == nil {
		return nil, ErrRoomNotFound
	}
	return best, nil
}

func (s *MemoryStore) CreateMessage(_ context.Context, msg *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	msg.ID = s.nextID
	msg.CreatedAt = time.Now()
	s.messages[msg.RoomID] = append(s.messages[msg.RoomID], *msg)
	return nil
}

func (s *MemoryStore) ListMessages(_ context.Context, roomID string, limit int) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[roomID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}
