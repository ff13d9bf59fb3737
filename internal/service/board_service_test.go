package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/purvjoshi04/SharedInk/internal/config"
	"github.com/purvjoshi04/SharedInk/internal/domain"
	"github.com/purvjoshi04/SharedInk/internal/hub"
	"github.com/purvjoshi04/SharedInk/internal/repository"
)

type fixture struct {
	hub   *hub.Hub
	store *repository.MemoryStore
	svc   BoardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	h := hub.NewHub(config.WebSocketConfig{MaxMessageSize: 1 << 20})
	store := repository.NewMemoryStore()
	return &fixture{
		hub:   h,
		store: store,
		svc:   NewBoardService(h, store, nil),
	}
}

func (f *fixture) addRoom(t *testing.T, id string) {
	t.Helper()
	if err := f.store.CreateRoom(context.Background(), &domain.Room{ID: id, Slug: id + "-slug", AdminID: "admin"}); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
}

func (f *fixture) connect(id, userID string) *hub.Client {
	c := hub.NewClient(id, userID, f.hub, nil, config.WebSocketConfig{})
	f.hub.Register(c)
	return c
}

func drain(c *hub.Client) [][]byte {
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

func frameTypes(frames [][]byte) []string {
	var types []string
	for _, frame := range frames {
		var base domain.BaseMessage
		json.Unmarshal(frame, &base)
		types = append(types, base.Type)
	}
	return types
}

func TestJoinRoomUnknownRoom(t *testing.T) {
	f := newFixture(t)
	c := f.connect("a", "user-a")

	if err := f.svc.HandleJoinRoom(context.Background(), c, "nope"); err != nil {
		t.Fatalf("HandleJoinRoom: %v", err)
	}

	frames := drain(c)
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	var errMsg domain.ErrorMessage
	if err := json.Unmarshal(frames[0], &errMsg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if errMsg.Type != domain.MsgTypeError || errMsg.Code != domain.ErrCodeRoomNotFound {
		t.Fatalf("got %+v, want room-not-found error", errMsg)
	}
	if f.hub.InRoom(c.ID, "nope") {
		t.Fatal("client must not be joined to a missing room")
	}
}

func TestJoinRoomBySlug(t *testing.T) {
	f := newFixture(t)
	f.addRoom(t, "room1")
	c := f.connect("a", "user-a")

	if err := f.svc.HandleJoinRoom(context.Background(), c, "room1-slug"); err != nil {
		t.Fatalf("HandleJoinRoom: %v", err)
	}
	if !f.hub.InRoom(c.ID, "room1-slug") {
		t.Fatal("client should be joined under the requested identifier")
	}
}

func TestJoinRoomNotifiesOthers(t *testing.T) {
	f := newFixture(t)
	f.addRoom(t, "room1")
	a := f.connect("a", "user-a")
	b := f.connect("b", "user-b")

	ctx := context.Background()
	if err := f.svc.HandleJoinRoom(ctx, a, "room1"); err != nil {
		t.Fatal(err)
	}
	drain(a)
	if err := f.svc.HandleJoinRoom(ctx, b, "room1"); err != nil {
		t.Fatal(err)
	}

	types := frameTypes(drain(a))
	if len(types) != 1 || types[0] != domain.MsgTypeUserJoined {
		t.Fatalf("existing member got %v, want [user_joined]", types)
	}
	types = frameTypes(drain(b))
	if len(types) != 1 || types[0] != domain.MsgTypeRoomJoined {
		t.Fatalf("joiner got %v, want [room_joined]", types)
	}
}

func TestChatPersistsAndFansOutToAll(t *testing.T) {
	f := newFixture(t)
	f.addRoom(t, "room1")
	a := f.connect("a", "user-a")
	b := f.connect("b", "user-b")
	ctx := context.Background()
	f.svc.HandleJoinRoom(ctx, a, "room1")
	f.svc.HandleJoinRoom(ctx, b, "room1")
	drain(a)
	drain(b)

	msg := domain.ChatMessage{Type: domain.MsgTypeChat, RoomID: "room1", Message: `{"shape":{"type":"rect","x":1,"y":2,"width":3,"height":4}}`}
	raw, _ := json.Marshal(msg)
	if err := f.svc.HandleChat(ctx, a, msg, raw); err != nil {
		t.Fatalf("HandleChat: %v", err)
	}

	// chat echoes to the sender too
	for _, c := range []*hub.Client{a, b} {
		frames := drain(c)
		if len(frames) != 1 || string(frames[0]) != string(raw) {
			t.Fatalf("client %s got %q, want the original frame", c.ID, frames)
		}
	}

	stored, err := f.store.ListMessages(ctx, "room1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || stored[0].Content != msg.Message {
		t.Fatalf("stored %+v, want the chat payload", stored)
	}
}

func TestChatEmptyMessageRejected(t *testing.T) {
	f := newFixture(t)
	f.addRoom(t, "room1")
	a := f.connect("a", "user-a")
	f.svc.HandleJoinRoom(context.Background(), a, "room1")
	drain(a)

	msg := domain.ChatMessage{Type: domain.MsgTypeChat, RoomID: "room1", Message: "   "}
	raw, _ := json.Marshal(msg)
	if err := f.svc.HandleChat(context.Background(), a, msg, raw); err != nil {
		t.Fatal(err)
	}

	frames := drain(a)
	var errMsg domain.ErrorMessage
	json.Unmarshal(frames[0], &errMsg)
	if errMsg.Code != domain.ErrCodeEmptyMessage {
		t.Fatalf("got code %q, want %q", errMsg.Code, domain.ErrCodeEmptyMessage)
	}

	if stored, _ := f.store.ListMessages(context.Background(), "room1", 0); len(stored) != 0 {
		t.Fatal("empty message must not be persisted")
	}
}

func TestShapeOpExcludesSender(t *testing.T) {
	f := newFixture(t)
	f.addRoom(t, "room1")
	a := f.connect("a", "user-a")
	b := f.connect("b", "user-b")
	ctx := context.Background()
	f.svc.HandleJoinRoom(ctx, a, "room1")
	f.svc.HandleJoinRoom(ctx, b, "room1")
	drain(a)
	drain(b)

	raw := []byte(`{"type":"delete_shape","roomId":"room1","shape":{"type":"circle","centerX":0,"centerY":0,"radius":5}}`)
	if err := f.svc.HandleShapeOp(ctx, a, "room1", raw); err != nil {
		t.Fatal(err)
	}

	if frames := drain(a); len(frames) != 0 {
		t.Fatalf("sender got %d frames, want 0", len(frames))
	}
	frames := drain(b)
	if len(frames) != 1 || string(frames[0]) != string(raw) {
		t.Fatalf("peer got %q, want the original frame", frames)
	}
}

func TestCanvasStateHandshake(t *testing.T) {
	f := newFixture(t)
	f.addRoom(t, "room1")
	a := f.connect("a", "user-a")
	b := f.connect("b", "user-b")
	c := f.connect("c", "user-c")
	ctx := context.Background()
	for _, cl := range []*hub.Client{a, b, c} {
		f.svc.HandleJoinRoom(ctx, cl, "room1")
	}
	drain(a)
	drain(b)
	drain(c)

	if err := f.svc.HandleRequestCanvasState(ctx, c, "room1"); err != nil {
		t.Fatal(err)
	}

	// exactly the first other member is asked
	frames := drain(a)
	if len(frames) != 1 {
		t.Fatalf("first member got %d frames, want 1", len(frames))
	}
	var req domain.SendCanvasStateMessage
	json.Unmarshal(frames[0], &req)
	if req.Type != domain.MsgTypeSendCanvasState || req.RequesterID != "c" {
		t.Fatalf("got %+v, want send_canvas_state for c", req)
	}
	if frames := drain(b); len(frames) != 0 {
		t.Fatal("only one peer should be asked")
	}

	// the reply is routed to the requester only
	reply := []byte(`{"type":"canvas_state","roomId":"room1","canvasData":[],"requesterId":"c"}`)
	if err := f.svc.HandleCanvasState(ctx, a, "c", reply); err != nil {
		t.Fatal(err)
	}
	frames = drain(c)
	if len(frames) != 1 || string(frames[0]) != string(reply) {
		t.Fatalf("requester got %q, want the reply", frames)
	}
	if len(drain(b)) != 0 {
		t.Fatal("reply must not reach other members")
	}
}

func TestCanvasStateAlonePeerless(t *testing.T) {
	f := newFixture(t)
	f.addRoom(t, "room1")
	a := f.connect("a", "user-a")
	ctx := context.Background()
	f.svc.HandleJoinRoom(ctx, a, "room1")
	drain(a)

	if err := f.svc.HandleRequestCanvasState(ctx, a, "room1"); err != nil {
		t.Fatal(err)
	}
	if frames := drain(a); len(frames) != 0 {
		t.Fatalf("sole member got %d frames, want 0", len(frames))
	}
}

func TestCanvasStateRequesterGone(t *testing.T) {
	f := newFixture(t)
	f.addRoom(t, "room1")
	a := f.connect("a", "user-a")
	ctx := context.Background()
	f.svc.HandleJoinRoom(ctx, a, "room1")
	drain(a)

	reply := []byte(`{"type":"canvas_state","roomId":"room1","canvasData":[],"requesterId":"ghost"}`)
	if err := f.svc.HandleCanvasState(ctx, a, "ghost", reply); err != nil {
		t.Fatalf("reply to a gone requester must be dropped silently, got %v", err)
	}
}

func TestDisconnectNotifiesRooms(t *testing.T) {
	f := newFixture(t)
	f.addRoom(t, "room1")
	a := f.connect("a", "user-a")
	b := f.connect("b", "user-b")
	ctx := context.Background()
	f.svc.HandleJoinRoom(ctx, a, "room1")
	f.svc.HandleJoinRoom(ctx, b, "room1")
	drain(a)
	drain(b)

	rooms := f.hub.Unregister(b)
	f.svc.HandleDisconnect(ctx, b, rooms)

	frames := drain(a)
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	var left domain.UserLeftMessage
	json.Unmarshal(frames[0], &left)
	if left.Type != domain.MsgTypeUserLeft || left.UserID != "user-b" {
		t.Fatalf("got %+v, want user_left for user-b", left)
	}
}
