package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/purvjoshi04/SharedInk/internal/cache"
	"github.com/purvjoshi04/SharedInk/internal/domain"
	"github.com/purvjoshi04/SharedInk/internal/hub"
	"github.com/purvjoshi04/SharedInk/internal/repository"
	"github.com/purvjoshi04/SharedInk/pkg/log"
)

const persistTimeout = 5 * time.Second

type boardService struct {
	hub   *hub.Hub
	store repository.Store
	cache cache.MessageCache // nil when the history cache is disabled
}

// NewBoardService creates the router over the given hub and
// persistence store. msgCache may be nil.
func NewBoardService(h *hub.Hub, store repository.Store, msgCache cache.MessageCache) BoardService {
	return &boardService{
		hub:   h,
		store: store,
		cache: msgCache,
	}
}

func (s *boardService) HandleJoinRoom(ctx context.Context, c *hub.Client, roomID string) error {
	if roomID == "" {
		return c.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "roomId is required"))
	}

	if err := s.roomExists(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.SendMessage(domain.NewErrorMessage(domain.ErrCodeRoomNotFound, "room does not exist"))
		}
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldRoomID, roomID).Msg("room lookup failed")
		return c.SendMessage(domain.NewErrorMessage(domain.ErrCodeInternalError, "failed to validate room"))
	}

	s.hub.JoinRoom(c, roomID)

	if err := c.SendMessage(&domain.RoomJoinedMessage{Type: domain.MsgTypeRoomJoined, RoomID: roomID}); err != nil {
		return err
	}

	s.broadcast(roomID, &domain.UserJoinedMessage{
		Type:   domain.MsgTypeUserJoined,
		RoomID: roomID,
		UserID: c.UserID,
	}, c.ID)
	return nil
}

func (s *boardService) HandleLeaveRoom(_ context.Context, c *hub.Client, roomID string) error {
	if roomID == "" {
		return c.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "roomId is required"))
	}

	s.hub.LeaveRoom(c, roomID)

	s.broadcast(roomID, &domain.UserLeftMessage{
		Type:   domain.MsgTypeUserLeft,
		RoomID: roomID,
		UserID: c.UserID,
	}, c.ID)
	return nil
}

func (s *boardService) HandleChat(ctx context.Context, c *hub.Client, msg domain.ChatMessage, raw []byte) error {
	if strings.TrimSpace(msg.Message) == "" {
		return c.SendMessage(domain.NewErrorMessage(domain.ErrCodeEmptyMessage, "message must not be empty"))
	}
	if msg.RoomID == "" {
		return c.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "roomId is required"))
	}

	if err := s.roomExists(ctx, msg.RoomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.SendMessage(domain.NewErrorMessage(domain.ErrCodeRoomNotFound, "room does not exist"))
		}
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldRoomID, msg.RoomID).Msg("room lookup failed")
		return c.SendMessage(domain.NewErrorMessage(domain.ErrCodeInternalError, "failed to validate room"))
	}

	// Best-effort persistence: a failed write degrades to "not
	// replayable on reload" but never blocks fan-out.
	pctx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()
	if err := s.store.CreateMessage(pctx, &domain.Message{
		RoomID:  msg.RoomID,
		UserID:  c.UserID,
		Content: msg.Message,
	}); err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).
			Str(log.FieldRoomID, msg.RoomID).
			Str(log.FieldUserID, c.UserID).
			Msg("failed to persist chat message")
	} else if s.cache != nil {
		if err := s.cache.Invalidate(pctx, msg.RoomID); err != nil {
			l := log.Ctx(ctx)
			l.Warn().Err(err).Str(log.FieldRoomID, msg.RoomID).Msg("history cache invalidation failed")
		}
	}

	// Chat goes to every member including the sender, who reconciles
	// the echo by content dedup.
	s.hub.BroadcastToRoom(msg.RoomID, raw, "")
	return nil
}

func (s *boardService) HandleShapeOp(_ context.Context, c *hub.Client, roomID string, raw []byte) error {
	if roomID == "" {
		return c.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "roomId is required"))
	}
	// The sender already applied the operation locally.
	s.hub.BroadcastToRoom(roomID, raw, c.ID)
	return nil
}

func (s *boardService) HandleCanvasUpdate(_ context.Context, c *hub.Client, roomID string, raw []byte) error {
	if roomID == "" {
		return c.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "roomId is required"))
	}
	s.hub.BroadcastToRoom(roomID, raw, c.ID)
	return nil
}

func (s *boardService) HandleRequestCanvasState(ctx context.Context, c *hub.Client, roomID string) error {
	if roomID == "" {
		return c.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "roomId is required"))
	}

	peer, ok := s.hub.FirstOtherMember(roomID, c.ID)
	if !ok {
		// Nobody to ask; the requester keeps the history it fetched.
		l := log.Ctx(ctx)
		l.Debug().Str(log.FieldRoomID, roomID).Msg("no peer available for canvas state")
		return nil
	}

	return peer.SendMessage(&domain.SendCanvasStateMessage{
		Type:        domain.MsgTypeSendCanvasState,
		RoomID:      roomID,
		RequesterID: c.ID,
	})
}

func (s *boardService) HandleCanvasState(ctx context.Context, c *hub.Client, requesterID string, raw []byte) error {
	if requesterID == "" {
		return c.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "requesterId is required"))
	}

	// Dropped silently when the requester has disconnected.
	if !s.hub.SendToClient(requesterID, raw) {
		l := log.Ctx(ctx)
		l.Debug().
			Str(log.FieldClientID, requesterID).
			Msg("canvas state requester gone, reply dropped")
	}
	return nil
}

func (s *boardService) HandleDisconnect(_ context.Context, c *hub.Client, rooms []string) {
	for _, roomID := range rooms {
		s.broadcast(roomID, &domain.UserLeftMessage{
			Type:   domain.MsgTypeUserLeft,
			RoomID: roomID,
			UserID: c.UserID,
		}, c.ID)
	}
}

func (s *boardService) roomExists(ctx context.Context, roomID string) error {
	_, err := s.store.FindRoomByID(ctx, roomID)
	if errors.Is(err, repository.ErrRoomNotFound) {
		// Clients may address rooms by slug.
		_, err = s.store.FindRoomBySlug(ctx, roomID)
	}
	return err
}

func (s *boardService) broadcast(roomID string, message interface{}, excludeID string) {
	data, err := json.Marshal(message)
	if err != nil {
		l := log.L()
		l.Error().Err(err).Str(log.FieldRoomID, roomID).Msg("failed to marshal broadcast")
		return
	}
	s.hub.BroadcastToRoom(roomID, data, excludeID)
}
