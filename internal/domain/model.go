package domain

import (
	"time"

	"gorm.io/gorm"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name      string `gorm:"type:varchar(100);not null"`
	Password  string `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string { return "users" }

// ToDomain converts UserModel to a domain User.
func (m *UserModel) ToDomain() *User {
	return &User{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Password:  m.Password,
		CreatedAt: m.CreatedAt,
	}
}

// RoomModel is the GORM model for the rooms table.
type RoomModel struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	Slug      string `gorm:"type:varchar(100);uniqueIndex;not null"`
	AdminID   string `gorm:"type:varchar(36);index;not null"`
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (RoomModel) TableName() string { return "rooms" }

// ToDomain converts RoomModel to a domain Room.
func (m *RoomModel) ToDomain() *Room {
	return &Room{
		ID:        m.ID,
		Slug:      m.Slug,
		AdminID:   m.AdminID,
		CreatedAt: m.CreatedAt,
	}
}

// MessageModel is the GORM model for the messages table. The integer
// primary key doubles as the room replay order.
type MessageModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	RoomID    string `gorm:"type:varchar(36);index;not null"`
	UserID    string `gorm:"type:varchar(36);not null"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (MessageModel) TableName() string { return "messages" }

// ToDomain converts MessageModel to a domain Message.
func (m *MessageModel) ToDomain() *Message {
	return &Message{
		ID:        m.ID,
		RoomID:    m.RoomID,
		UserID:    m.UserID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
