// Package orm persists chat sessions and their messages in sqlite, so a
// conversation survives a server restart.
package orm

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ChatSession groups the messages of one conversation
type ChatSession struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	Messages  []ChatMessage `gorm:"foreignKey:SessionID"`
}

// ChatMessage is one turn of a conversation
type ChatMessage struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"index"`
	Role      string
	Content   string
	CreatedAt time.Time
}

// Open opens (or creates) the session database and runs migrations
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&ChatSession{}, &ChatMessage{}); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSession creates the session row if it does not exist yet
func EnsureSession(db *gorm.DB, sessionID string) error {
	session := ChatSession{ID: sessionID}
	return db.FirstOrCreate(&session, ChatSession{ID: sessionID}).Error
}

// AppendMessage records one message in a session
func AppendMessage(db *gorm.DB, sessionID, role, content string) error {
	message := ChatMessage{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	}
	return db.Create(&message).Error
}

// SessionMessages returns a session's messages in insertion order
func SessionMessages(db *gorm.DB, sessionID string) ([]ChatMessage, error) {
	var messages []ChatMessage
	err := db.Where("session_id = ?", sessionID).Order("id asc").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
