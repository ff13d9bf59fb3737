package httpapi

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/purvjoshi04/SharedInk/internal/cache"
	"github.com/purvjoshi04/SharedInk/internal/domain"
	"github.com/purvjoshi04/SharedInk/internal/repository"
	"github.com/purvjoshi04/SharedInk/pkg/log"
	"github.com/purvjoshi04/SharedInk/pkg/response"
)

const (
	historyLimit    = 1000
	historyCacheTTL = 30 * time.Second
)

// RoomHandler serves room CRUD and the history endpoint.
type RoomHandler struct {
	store repository.Store
	cache cache.MessageCache // nil disables caching
}

func NewRoomHandler(store repository.Store, msgCache cache.MessageCache) *RoomHandler {
	return &RoomHandler{store: store, cache: msgCache}
}

// CreateRoom creates a named room owned by the caller.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req domain.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	room := &domain.Room{
		ID:      uuid.New().String(),
		Slug:    req.Slug,
		AdminID: currentUserID(c),
	}
	if err := h.store.CreateRoom(c.Request.Context(), room); err != nil {
		if errors.Is(err, repository.ErrSlugTaken) {
			response.Conflict(c, "room slug already taken")
			return
		}
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("create room failed")
		response.InternalError(c, "failed to create room")
		return
	}

	response.Created(c, room)
}

// GetRoomBySlug resolves a room by its slug.
func (h *RoomHandler) GetRoomBySlug(c *gin.Context) {
	room, err := h.store.FindRoomBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			response.NotFound(c, "room not found")
			return
		}
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("find room failed")
		response.InternalError(c, "failed to look up room")
		return
	}
	response.Success(c, room)
}

// GetChats returns a room's stored messages oldest first, the replay
// feed the sync client seeds its canvas from. Reads go through the
// cache when one is configured.
func (h *RoomHandler) GetChats(c *gin.Context) {
	ctx := c.Request.Context()
	roomID := c.Param("roomId")

	if h.cache != nil {
		if msgs, err := h.cache.Get(ctx, roomID); err == nil {
			response.Success(c, domain.MessagesResponse{Messages: msgs})
			return
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			l := log.Ctx(ctx)
			l.Warn().Err(err).Str(log.FieldRoomID, roomID).Msg("history cache read failed")
		}
	}

	if _, err := h.store.FindRoomByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			response.NotFound(c, "room not found")
			return
		}
		l := log.Ctx(ctx)
		l.Error().Err(err).Msg("find room failed")
		response.InternalError(c, "failed to look up room")
		return
	}

	msgs, err := h.store.ListMessages(ctx, roomID, historyLimit)
	if err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldRoomID, roomID).Msg("list messages failed")
		response.InternalError(c, "failed to load messages")
		return
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, roomID, msgs, historyCacheTTL); err != nil {
			l := log.Ctx(ctx)
			l.Warn().Err(err).Str(log.FieldRoomID, roomID).Msg("history cache write failed")
		}
	}

	response.Success(c, domain.MessagesResponse{Messages: msgs})
}
