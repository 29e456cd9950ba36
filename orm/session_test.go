package orm

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpen(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "sessions.db"))
	assert.NoError(t, err)
	assert.NotNil(t, db)

	assert.True(t, db.Migrator().HasTable(&ChatSession{}))
	assert.True(t, db.Migrator().HasTable(&ChatMessage{}))
}

func TestEnsureSession(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "sessions.db"))
	assert.NoError(t, err)

	assert.NoError(t, EnsureSession(db, "session-1"))
	// Ensuring an existing session is a no-op, not a constraint violation.
	assert.NoError(t, EnsureSession(db, "session-1"))

	var count int64
	db.Model(&ChatSession{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAppendMessage_Order(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "sessions.db"))
	assert.NoError(t, err)

	assert.NoError(t, EnsureSession(db, "session-1"))
	assert.NoError(t, EnsureSession(db, "session-2"))

	assert.NoError(t, AppendMessage(db, "session-1", "user", "find flights to LAX"))
	assert.NoError(t, AppendMessage(db, "session-2", "user", "unrelated"))
	assert.NoError(t, AppendMessage(db, "session-1", "model", "Here are 2 options."))

	messages, err := SessionMessages(db, "session-1")
	assert.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "find flights to LAX", messages[0].Content)
	assert.Equal(t, "model", messages[1].Role)
	assert.Equal(t, "Here are 2 options.", messages[1].Content)
}

func TestSessionMessages_Empty(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "sessions.db"))
	assert.NoError(t, err)

	messages, err := SessionMessages(db, "no-such-session")
	assert.NoError(t, err)
	assert.Empty(t, messages)
}
