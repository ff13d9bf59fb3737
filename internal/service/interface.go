package service

import (
	"context"

	"github.com/purvjoshi04/SharedInk/internal/domain"
	"github.com/purvjoshi04/SharedInk/internal/hub"
)

// BoardService routes room-scoped canvas messages. It holds no canvas
// state of its own: shape payloads pass through verbatim and late
// joiners are reconciled peer-to-peer.
type BoardService interface {
	HandleJoinRoom(ctx context.Context, c *hub.Client, roomID string) error
	HandleLeaveRoom(ctx context.Context, c *hub.Client, roomID string) error
	HandleChat(ctx context.Context, c *hub.Client, msg domain.ChatMessage, raw []byte) error
	// HandleShapeOp covers delete_shape and move_shape: the frame is
	// fanned out verbatim to every other member.
	HandleShapeOp(ctx context.Context, c *hub.Client, roomID string, raw []byte) error
	HandleCanvasUpdate(ctx context.Context, c *hub.Client, roomID string, raw []byte) error
	HandleRequestCanvasState(ctx context.Context, c *hub.Client, roomID string) error
	HandleCanvasState(ctx context.Context, c *hub.Client, requesterID string, raw []byte) error
	HandleDisconnect(ctx context.Context, c *hub.Client, rooms []string)
}
