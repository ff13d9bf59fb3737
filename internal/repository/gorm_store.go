package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/purvjoshi04/SharedInk/internal/domain"
	"github.com/purvjoshi04/SharedInk/pkg/log"
)

// GormStore implements Store using GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GORM-backed store and migrates its tables.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&domain.UserModel{}, &domain.RoomModel{}, &domain.MessageModel{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *domain.User) error {
	l := log.Ctx(ctx)

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	model := &domain.UserModel{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Password: user.Password,
	}
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		l.Error().Err(err).Msg("failed to create user in db")
		return err
	}
	user.CreatedAt = model.CreatedAt
	return nil
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model domain.UserModel
	err := s.db.WithContext(ctx).First(&model, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		l := log.Ctx(ctx)
		l.Error().Err(err).Msg("failed to find user by email")
		return nil, err
	}
	return model.ToDomain(), nil
}

func (s *GormStore) CreateRoom(ctx context.Context, room *domain.Room) error {
	l := log.Ctx(ctx)

	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	model := &domain.RoomModel{
		ID:      room.ID,
		Slug:    room.Slug,
		AdminID: room.AdminID,
	}
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlugTaken
		}
		l.Error().Err(err).Str(log.FieldRoomID, room.ID).Msg("failed to create room in db")
		return err
	}
	room.CreatedAt = model.CreatedAt
	l.Debug().Str(log.FieldRoomID, room.ID).Msg("room created in db")
	return nil
}

func (s *GormStore) FindRoomByID(ctx context.Context, id string) (*domain.Room, error) {
	var model domain.RoomModel
	err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldRoomID, id).Msg("failed to find room by id")
		return nil, err
	}
	return model.ToDomain(), nil
}

func (s *GormStore) FindRoomBySlug(ctx context.Context, slug string) (*domain.Room, error) {
	var model domain.RoomModel
	err := s.db.WithContext(ctx).First(&model, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		l := log.Ctx(ctx)
		l.Error().Err(err).Str("slug", slug).Msg("failed to find room by slug")
		return nil, err
	}
	return model.ToDomain(), nil
}

func (s *GormStore) FindRoomByAdmin(ctx context.Context, adminID string) (*domain.Room, error) {
	var model domain.RoomModel
	err := s.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Order("created_at ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldUserID, adminID).Msg("failed to find room by admin")
		return nil, err
	}
	return model.ToDomain(), nil
}

func (s *GormStore) CreateMessage(ctx context.Context, msg *domain.Message) error {
	model := &domain.MessageModel{
		RoomID:  msg.RoomID,
		UserID:  msg.UserID,
		Content: msg.Content,
	}
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldRoomID, msg.RoomID).Msg("failed to persist message")
		return err
	}
	msg.ID = model.ID
	msg.CreatedAt = model.CreatedAt
	return nil
}

func (s *GormStore) ListMessages(ctx context.Context, roomID string, limit int) ([]domain.Message, error) {
	query := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []domain.MessageModel
	if err := query.Find(&models).Error; err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldRoomID, roomID).Msg("failed to list messages")
		return nil, err
	}

	messages := make([]domain.Message, len(models))
	for i := range models {
		messages[i] = *models[i].ToDomain()
	}
	return messages, nil
}
