package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/purvjoshi04/SharedInk/internal/domain"
)

func TestMemoryStoreUserLifecycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	user := &domain.User{Email: "a@example.com", Name: "A", Password: "hash"}
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatal(err)
	}
	if user.ID == "" {
		t.Fatal("CreateUser must assign an id")
	}

	if err := s.CreateUser(ctx, &domain.User{Email: "a@example.com"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email error = %v, want ErrEmailTaken", err)
	}

	found, err := s.FindUserByEmail(ctx, "a@example.com")
	if err != nil || found.ID != user.ID {
		t.Fatalf("FindUserByEmail = %+v, %v", found, err)
	}

	if _, err := s.FindUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("missing user error = %v, want ErrUserNotFound", err)
	}
}

func TestMemoryStoreRoomLifecycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	room := &domain.Room{ID: "fixed-id", Slug: "my-room", AdminID: "admin"}
	if err := s.CreateRoom(ctx, room); err != nil {
		t.Fatal(err)
	}
	if room.ID != "fixed-id" {
		t.Fatal("CreateRoom must keep a caller-provided id")
	}

	if err := s.CreateRoom(ctx, &domain.Room{Slug: "my-room"}); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("duplicate slug error = %v, want ErrSlugTaken", err)
	}

	byID, err := s.FindRoomByID(ctx, "fixed-id")
	if err != nil || byID.Slug != "my-room" {
		t.Fatalf("FindRoomByID = %+v, %v", byID, err)
	}
	bySlug, err := s.FindRoomBySlug(ctx, "my-room")
	if err != nil || bySlug.ID != "fixed-id" {
		t.Fatalf("FindRoomBySlug = %+v, %v", bySlug, err)
	}
	byAdmin, err := s.FindRoomByAdmin(ctx, "admin")
	if err != nil || byAdmin.ID != "fixed-id" {
		t.Fatalf("FindRoomByAdmin = %+v, %v", byAdmin, err)
	}

	if _, err := s.FindRoomByID(ctx, "nope"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("missing room error = %v, want ErrRoomNotFound", err)
	}
}

func TestMemoryStoreMessagesOrderedAndLimited(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		msg := &domain.Message{RoomID: "room1", UserID: "u", Content: fmt.Sprintf("m%d", i)}
		if err := s.CreateMessage(ctx, msg); err != nil {
			t.Fatal(err)
		}
		if msg.ID != int64(i+1) {
			t.Fatalf("message id = %d, want %d", msg.ID, i+1)
		}
	}

	all, err := s.ListMessages(ctx, "room1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 || all[0].Content != "m0" || all[4].Content != "m4" {
		t.Fatalf("ListMessages = %+v, want m0..m4 in order", all)
	}

	limited, err := s.ListMessages(ctx, "room1", 2)
	if err != nil || len(limited) != 2 {
		t.Fatalf("limited = %+v, %v", limited, err)
	}

	empty, err := s.ListMessages(ctx, "other", 0)
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty room = %+v, %v", empty, err)
	}
}
