package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/purvjoshi04/SharedInk/internal/auth"
	"github.com/purvjoshi04/SharedInk/internal/config"
	"github.com/purvjoshi04/SharedInk/internal/domain"
	"github.com/purvjoshi04/SharedInk/internal/hub"
	"github.com/purvjoshi04/SharedInk/internal/service"
	"github.com/purvjoshi04/SharedInk/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades connections, authenticates them from the query
// credential, and dispatches inbound frames by message type.
type WSHandler struct {
	hub      *hub.Hub
	service  service.BoardService
	verifier auth.Verifier // nil when the jwt secret is not configured
	wsCfg    config.WebSocketConfig
}

// NewWSHandler creates the WebSocket handler. verifier may be nil to
// signal a misconfigured deployment; every handshake is then refused
// with a dedicated close code.
func NewWSHandler(h *hub.Hub, svc service.BoardService, verifier auth.Verifier, wsCfg config.WebSocketConfig) *WSHandler {
	return &WSHandler{
		hub:      h,
		service:  svc,
		verifier: verifier,
		wsCfg:    wsCfg,
	}
}

// RegisterRoutes mounts the handler.
func (h *WSHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleWebSocket)
}

// HandleWebSocket authenticates and registers one connection. A
// missing or invalid token, or a missing server secret, closes the
// connection with a distinct code before any message is processed.
func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	l := log.L()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		closeWith(conn, domain.CloseMissingToken, "missing token")
		return
	}

	if h.verifier == nil {
		l.Error().Msg("rejecting connection: jwt secret not configured")
		closeWith(conn, domain.CloseServerMisconfigured, "server configuration error")
		return
	}

	userID, err := h.verifier.Verify(token)
	if err != nil {
		l.Warn().Err(err).Msg("token verification failed")
		closeWith(conn, domain.CloseInvalidToken, "invalid token")
		return
	}

	client := hub.NewClient(uuid.New().String(), userID, h.hub, conn, h.wsCfg)
	h.hub.Register(client)

	// queue the ack before the read pump starts so it precedes any
	// reply to inbound traffic
	client.SendMessage(&domain.ConnectedMessage{Type: domain.MsgTypeConnected, UserID: userID})

	go client.WritePump()
	go client.ReadPump(h.handleMessage, h.handleClose)
}

func (h *WSHandler) handleClose(c *hub.Client, rooms []string) {
	h.service.HandleDisconnect(context.Background(), c, rooms)
}

func (h *WSHandler) handleMessage(client *hub.Client, message []byte) {
	l := log.L()

	var base domain.BaseMessage
	if err := json.Unmarshal(message, &base); err != nil {
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "invalid message format"))
		return
	}

	ctx := log.WithClient(context.Background(), client.ID, client.UserID)

	switch base.Type {
	case domain.MsgTypeJoinRoom:
		var msg domain.JoinRoomMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "invalid join_room message"))
			return
		}
		if err := h.service.HandleJoinRoom(ctx, client, msg.RoomID); err != nil {
			l.Error().Err(err).Str(log.FieldClientID, client.ID).Msg("join room failed")
		}

	case domain.MsgTypeLeaveRoom:
		var msg domain.LeaveRoomMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "invalid leave_room message"))
			return
		}
		if err := h.service.HandleLeaveRoom(ctx, client, msg.RoomID); err != nil {
			l.Error().Err(err).Str(log.FieldClientID, client.ID).Msg("leave room failed")
		}

	case domain.MsgTypeChat:
		var msg domain.ChatMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "invalid chat message"))
			return
		}
		if err := h.service.HandleChat(ctx, client, msg, message); err != nil {
			l.Error().Err(err).Str(log.FieldClientID, client.ID).Msg("chat failed")
		}

	case domain.MsgTypeDeleteShape, domain.MsgTypeMoveShape:
		var msg domain.RoomMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "invalid shape message"))
			return
		}
		if err := h.service.HandleShapeOp(ctx, client, msg.RoomID, message); err != nil {
			l.Error().Err(err).Str(log.FieldClientID, client.ID).Str(log.FieldMsgType, base.Type).Msg("shape op failed")
		}

	case domain.MsgTypeCanvasUpdate:
		var msg domain.RoomMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "invalid canvas_update message"))
			return
		}
		if err := h.service.HandleCanvasUpdate(ctx, client, msg.RoomID, message); err != nil {
			l.Error().Err(err).Str(log.FieldClientID, client.ID).Msg("canvas update failed")
		}

	case domain.MsgTypeRequestCanvasState:
		var msg domain.RequestCanvasStateMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "invalid request_canvas_state message"))
			return
		}
		if err := h.service.HandleRequestCanvasState(ctx, client, msg.RoomID); err != nil {
			l.Error().Err(err).Str(log.FieldClientID, client.ID).Msg("canvas state request failed")
		}

	case domain.MsgTypeCanvasState:
		var msg struct {
			RequesterID string `json:"requesterId"`
		}
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "invalid canvas_state message"))
			return
		}
		if err := h.service.HandleCanvasState(ctx, client, msg.RequesterID, message); err != nil {
			l.Error().Err(err).Str(log.FieldClientID, client.ID).Msg("canvas state forward failed")
		}

	default:
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "unknown message type"))
	}
}

func closeWith(conn *websocket.Conn, code int, reason string) {
	deadline := time.Now().Add(time.Second)
	conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	conn.Close()
}
