package domain

import "time"

// User is a registered account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Room scopes a shared canvas and its connected users.
type Room struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	AdminID   string    `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is one persisted room event; Content holds an encoded shape
// for drawing operations.
type Message struct {
	ID        int64     `json:"id"`
	RoomID    string    `json:"roomId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRoomRequest is the REST payload for creating a room.
type CreateRoomRequest struct {
	Slug string `json:"slug" binding:"required,min=1,max=100"`
}

// SignupRequest is the REST payload for account creation.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// SigninRequest is the REST payload for signing in.
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries a freshly issued token.
type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	RoomID string `json:"roomId,omitempty"`
}

// MessagesResponse is the history fetch payload: messages ordered by
// creation sequence.
type MessagesResponse struct {
	Messages []Message `json:"messages"`
}
