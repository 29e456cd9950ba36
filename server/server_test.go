package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/smarttrip/backend/agents"
	"github.com/smarttrip/backend/orm"
)

// fakeResponder records the last call and returns a canned reply
type fakeResponder struct {
	reply       string
	err         error
	lastHistory []agents.Message
	lastMessage string
}

func (f *fakeResponder) Respond(ctx context.Context, history []agents.Message, message string) (string, error) {
	f.lastHistory = history
	f.lastMessage = message
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestServer(t *testing.T, agent Responder) (*Server, *gorm.DB) {
	t.Helper()
	db, err := orm.Open(filepath.Join(t.TempDir(), "sessions.db"))
	assert.NoError(t, err)
	return New(agent, db), db
}

func postChat(t *testing.T, handler http.Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	encoded, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHandleChat_NewSession(t *testing.T) {
	agent := &fakeResponder{reply: "LAX is Los Angeles International."}
	srv, db := newTestServer(t, agent)

	w := postChat(t, srv.Handler(), map[string]string{"message": "Tell me about LAX"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp chatResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LAX is Los Angeles International.", resp.Response)
	assert.NotEmpty(t, resp.SessionID)

	// A new session has no prior history.
	assert.Empty(t, agent.lastHistory)
	assert.Equal(t, "Tell me about LAX", agent.lastMessage)

	// Both turns were stored.
	messages, err := orm.SessionMessages(db, resp.SessionID)
	assert.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, agents.RoleUser, messages[0].Role)
	assert.Equal(t, agents.RoleModel, messages[1].Role)
}

func TestHandleChat_ExistingSession(t *testing.T) {
	agent := &fakeResponder{reply: "Second reply."}
	srv, _ := newTestServer(t, agent)
	handler := srv.Handler()

	w := postChat(t, handler, map[string]string{"message": "first"})
	var first chatResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

	w = postChat(t, handler, map[string]string{"message": "second", "session_id": first.SessionID})
	var second chatResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))

	// The session ID is echoed and its history is replayed to the agent.
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Len(t, agent.lastHistory, 2)
	assert.Equal(t, agents.RoleUser, agent.lastHistory[0].Role)
	assert.Equal(t, "first", agent.lastHistory[0].Content)
	assert.Equal(t, agents.RoleModel, agent.lastHistory[1].Role)
	assert.Equal(t, "second", agent.lastMessage)
}

func TestHandleChat_AgentError(t *testing.T) {
	agent := &fakeResponder{err: assert.AnError}
	srv, db := newTestServer(t, agent)

	w := postChat(t, srv.Handler(), map[string]string{"message": "hello"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp chatResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Response, "Error: ")
	assert.NotEmpty(t, resp.SessionID)

	// A failed turn is not recorded.
	messages, err := orm.SessionMessages(db, resp.SessionID)
	assert.NoError(t, err)
	assert.Empty(t, messages)
}

func TestHandleChat_EmptyMessage(t *testing.T) {
	srv, _ := newTestServer(t, &fakeResponder{reply: "ok"})

	w := postChat(t, srv.Handler(), map[string]string{"message": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChat_InvalidBody(t *testing.T) {
	srv, _ := newTestServer(t, &fakeResponder{reply: "ok"})

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChat_MethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, &fakeResponder{reply: "ok"})

	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandler_CORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, &fakeResponder{reply: "ok"})

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
