// Package hub owns the connection/session registry and the per-room
// fan-out. All membership state lives behind one lock; fan-out never
// blocks on a slow recipient.
package hub

import (
	"sync"

	"github.com/purvjoshi04/SharedInk/internal/config"
	"github.com/purvjoshi04/SharedInk/pkg/log"
)

// Hub tracks connected clients and their room memberships. Room member
// lists keep join order so the canvas-state handshake can pick the
// first other member deterministically.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client   // clientID -> client
	rooms   map[string][]*Client // roomID -> members in join order
	config  config.WebSocketConfig
}

// NewHub creates an empty hub.
func NewHub(cfg config.WebSocketConfig) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string][]*Client),
		config:  cfg,
	}
}

// Register adds an authenticated client to the session table.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	l := log.L()
	l.Debug().
		Str(log.FieldClientID, client.ID).
		Str(log.FieldUserID, client.UserID).
		Msg("client registered")
}

// Unregister removes the client from the session table and every room,
// closes its send queue, and returns the rooms it was a member of so
// the caller can emit departure notifications. Safe to call more than
// once; later calls return nil.
func (h *Hub) Unregister(client *Client) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return nil
	}
	delete(h.clients, client.ID)

	var rooms []string
	for roomID, members := range h.rooms {
		if idx := memberIndex(members, client.ID); idx >= 0 {
			h.rooms[roomID] = append(members[:idx], members[idx+1:]...)
			if len(h.rooms[roomID]) == 0 {
				delete(h.rooms, roomID)
			}
			rooms = append(rooms, roomID)
		}
	}

	client.closeSend()

	l := log.L()
	l.Debug().Str(log.FieldClientID, client.ID).Msg("client unregistered")
	return rooms
}

// Client looks up a connected client by id.
func (h *Hub) Client(id string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.clients[id]
	return c, ok
}

// JoinRoom registers room membership. Joining a room twice is a no-op.
func (h *Hub) JoinRoom(client *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members := h.rooms[roomID]
	if memberIndex(members, client.ID) >= 0 {
		return
	}
	h.rooms[roomID] = append(members, client)

	l := log.L()
	l.Info().
		Str(log.FieldClientID, client.ID).
		Str(log.FieldRoomID, roomID).
		Msg("client joined room")
}

// LeaveRoom removes room membership; a no-op if not a member.
func (h *Hub) LeaveRoom(client *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members := h.rooms[roomID]
	idx := memberIndex(members, client.ID)
	if idx < 0 {
		return
	}
	h.rooms[roomID] = append(members[:idx], members[idx+1:]...)
	if len(h.rooms[roomID]) == 0 {
		delete(h.rooms, roomID)
	}

	l := log.L()
	l.Info().
		Str(log.FieldClientID, client.ID).
		Str(log.FieldRoomID, roomID).
		Msg("client left room")
}

// InRoom reports whether the client is a member of the room.
func (h *Hub) InRoom(clientID, roomID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return memberIndex(h.rooms[roomID], clientID) >= 0
}

// RoomSize returns the number of members in the room.
func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[roomID])
}

// FirstOtherMember returns the earliest-joined member of the room other
// than excludeID.
func (h *Hub) FirstOtherMember(roomID, excludeID string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.rooms[roomID] {
		if c.ID != excludeID {
			return c, true
		}
	}
	return nil, false
}

// BroadcastToRoom queues data on every member of the room, skipping
// excludeID. Sends are non-blocking: a member with a full queue misses
// the frame instead of stalling the others.
func (h *Hub) BroadcastToRoom(roomID string, data []byte, excludeID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.rooms[roomID] {
		if c.ID == excludeID {
			continue
		}
		c.SendRaw(data)
	}
}

// SendToClient queues data for one client by id. Returns false if the
// client has disconnected; the frame is silently dropped in that case.
func (h *Hub) SendToClient(id string, data []byte) bool {
	h.mu.RLock()
	c, ok := h.clients[id]
	h.mu.RUnlock()

	if !ok {
		return false
	}
	c.SendRaw(data)
	return true
}

func memberIndex(members []*Client, clientID string) int {
	for i, c := range members {
		if c.ID == clientID {
			return i
		}
	}
	return -1
}
