package hub

import (
	"testing"

	"github.com/purvjoshi04/SharedInk/internal/config"
)

func testHub() *Hub {
	return NewHub(config.WebSocketConfig{MaxMessageSize: 1 << 20})
}

func testClient(h *Hub, id string) *Client {
	return NewClient(id, "user-"+id, h, nil, h.config)
}

func drain(c *Client) [][]byte {
	var out [][]byte
	for {
		select {
		case data, ok := <-c.Send:
			if !ok {
				return out
			}
			out = append(out, data)
		default:
			return out
		}
	}
}

func TestJoinRoomIdempotent(t *testing.T) {
	h := testHub()
	c := testClient(h, "a")
	h.Register(c)

	h.JoinRoom(c, "room")
	h.JoinRoom(c, "room")

	if got := h.RoomSize("room"); got != 1 {
		t.Fatalf("RoomSize = %d, want 1", got)
	}
}

func TestLeaveRoomNotMember(t *testing.T) {
	h := testHub()
	c := testClient(h, "a")
	h.Register(c)

	h.LeaveRoom(c, "room")

	if h.InRoom(c.ID, "room") {
		t.Fatal("client should not be in room")
	}
}

func TestUnregisterReturnsRooms(t *testing.T) {
	h := testHub()
	c := testClient(h, "a")
	h.Register(c)
	h.JoinRoom(c, "r1")
	h.JoinRoom(c, "r2")

	rooms := h.Unregister(c)
	if len(rooms) != 2 {
		t.Fatalf("Unregister returned %v, want 2 rooms", rooms)
	}
	for _, room := range rooms {
		if h.RoomSize(room) != 0 {
			t.Errorf("room %s still has members", room)
		}
	}
}

func TestUnregisterIdempotent(t *testing.T) {
	h := testHub()
	c := testClient(h, "a")
	h.Register(c)
	h.JoinRoom(c, "room")

	if rooms := h.Unregister(c); len(rooms) != 1 {
		t.Fatalf("first Unregister returned %v, want 1 room", rooms)
	}
	if rooms := h.Unregister(c); rooms != nil {
		t.Fatalf("second Unregister returned %v, want nil", rooms)
	}
}

func TestUnregisterAfterManualLeave(t *testing.T) {
	h := testHub()
	c := testClient(h, "a")
	h.Register(c)
	h.JoinRoom(c, "room")
	h.LeaveRoom(c, "room")

	if rooms := h.Unregister(c); len(rooms) != 0 {
		t.Fatalf("Unregister returned %v, want no rooms", rooms)
	}
}

func TestFirstOtherMemberJoinOrder(t *testing.T) {
	h := testHub()
	a := testClient(h, "a")
	b := testClient(h, "b")
	c := testClient(h, "c")
	for _, cl := range []*Client{a, b, c} {
		h.Register(cl)
		h.JoinRoom(cl, "room")
	}

	peer, ok := h.FirstOtherMember("room", "c")
	if !ok || peer.ID != "a" {
		t.Fatalf("FirstOtherMember = %v, want a", peer)
	}

	// when the earliest member asks, the next one answers
	peer, ok = h.FirstOtherMember("room", "a")
	if !ok || peer.ID != "b" {
		t.Fatalf("FirstOtherMember = %v, want b", peer)
	}

	if _, ok := h.FirstOtherMember("empty", "a"); ok {
		t.Fatal("expected no peer in empty room")
	}
}

func TestBroadcastExcludesSender(t *testing.T) {
	h := testHub()
	a := testClient(h, "a")
	b := testClient(h, "b")
	for _, cl := range []*Client{a, b} {
		h.Register(cl)
		h.JoinRoom(cl, "room")
	}

	h.BroadcastToRoom("room", []byte("x"), "a")

	if got := drain(a); len(got) != 0 {
		t.Errorf("sender received %d frames, want 0", len(got))
	}
	if got := drain(b); len(got) != 1 {
		t.Errorf("peer received %d frames, want 1", len(got))
	}
}

func TestBroadcastToAll(t *testing.T) {
	h := testHub()
	a := testClient(h, "a")
	b := testClient(h, "b")
	for _, cl := range []*Client{a, b} {
		h.Register(cl)
		h.JoinRoom(cl, "room")
	}

	h.BroadcastToRoom("room", []byte("x"), "")

	if len(drain(a)) != 1 || len(drain(b)) != 1 {
		t.Fatal("both members should receive the frame")
	}
}

func TestSendAfterUnregisterDropped(t *testing.T) {
	h := testHub()
	c := testClient(h, "a")
	h.Register(c)
	h.Unregister(c)

	// must not panic on the closed queue
	c.SendRaw([]byte("late"))

	if h.SendToClient("a", []byte("x")) {
		t.Fatal("SendToClient should report a disconnected client")
	}
}

func TestBroadcastFullQueueDoesNotBlock(t *testing.T) {
	h := testHub()
	c := testClient(h, "a")
	h.Register(c)
	h.JoinRoom(c, "room")

	for i := 0; i < cap(c.Send)+10; i++ {
		h.BroadcastToRoom("room", []byte("x"), "")
	}

	if got := len(drain(c)); got != cap(c.Send) {
		t.Fatalf("queued %d frames, want %d", got, cap(c.Send))
	}
}
