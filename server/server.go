// Package server exposes the chat front end over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smarttrip/backend/agents"
	logcontext "github.com/smarttrip/backend/context"
	"github.com/smarttrip/backend/log"
	"github.com/smarttrip/backend/orm"
)

// Responder produces one conversational reply given the session history
type Responder interface {
	Respond(ctx context.Context, history []agents.Message, message string) (string, error)
}

// Server handles chat requests and keeps session state in the store
type Server struct {
	agent Responder
	db    *gorm.DB
}

// New creates a chat server
func New(agent Responder, db *gorm.DB) *Server {
	return &Server{agent: agent, db: db}
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// Handler returns the HTTP handler with routing and CORS applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.handleChat)
	return withCORS(mux)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	ctx := logcontext.WithRequestID(r.Context(), logcontext.NewRequestID())

	// A missing session ID starts a new conversation.
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	if err := orm.EnsureSession(s.db, sessionID); err != nil {
		log.Errorf(ctx, "Failed to ensure session %s: %v", sessionID, err)
		writeJSON(w, chatResponse{Response: "Error: " + err.Error(), SessionID: sessionID})
		return
	}

	history, err := s.history(sessionID)
	if err != nil {
		log.Errorf(ctx, "Failed to load history for %s: %v", sessionID, err)
		writeJSON(w, chatResponse{Response: "Error: " + err.Error(), SessionID: sessionID})
		return
	}

	log.Infof(ctx, "Chat message for session %s (%d prior messages)", sessionID, len(history))

	reply, err := s.agent.Respond(ctx, history, req.Message)
	if err != nil {
		log.Errorf(ctx, "Agent error: %v", err)
		writeJSON(w, chatResponse{Response: "Error: " + err.Error(), SessionID: sessionID})
		return
	}

	if err := orm.AppendMessage(s.db, sessionID, agents.RoleUser, req.Message); err != nil {
		log.Errorf(ctx, "Failed to store user message: %v", err)
	}
	if err := orm.AppendMessage(s.db, sessionID, agents.RoleModel, reply); err != nil {
		log.Errorf(ctx, "Failed to store model message: %v", err)
	}

	writeJSON(w, chatResponse{Response: reply, SessionID: sessionID})
}

func (s *Server) history(sessionID string) ([]agents.Message, error) {
	stored, err := orm.SessionMessages(s.db, sessionID)
	if err != nil {
		return nil, err
	}
	history := make([]agents.Message, 0, len(stored))
	for _, m := range stored {
		history = append(history, agents.Message{Role: m.Role, Content: m.Content})
	}
	return history, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// withCORS allows cross-origin requests from the chat UI
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.ServeHTTP(w, r)
	})
}
