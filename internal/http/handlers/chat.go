package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/promptstudio/internal/chat"
	"github.com/promptstudio/internal/domain"
	"github.com/promptstudio/internal/middleware"
	"github.com/promptstudio/internal/session"
)

type chatSendRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply    *domain.ChatMessage  `json:"reply,omitempty"`
	Messages []domain.ChatMessage `json:"messages"`
}

// ChatSend runs one turn against the session's retained chat context. Turn
// failures come back inside the transcript as a fallback model message, not
// as an error status.
func (a *App) ChatSend(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	var req chatSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "message is required")
		return
	}
	flow, err := a.chatFlow(r, sess)
	if err != nil {
		a.error(w, http.StatusBadGateway, "chat_failed", "could not start chat session")
		return
	}
	msg, err := flow.Send(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrTurnInFlight) {
			a.error(w, http.StatusConflict, "turn_in_flight", "a chat turn is already in progress")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "chat turn failed")
		return
	}
	a.json(w, http.StatusOK, chatResponse{Reply: &msg, Messages: flow.Transcript()})
}

// ChatTranscript returns the ordered message history, creating the flow (and
// its greeting) on first access.
func (a *App) ChatTranscript(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	flow, err := a.chatFlow(r, sess)
	if err != nil {
		a.error(w, http.StatusBadGateway, "chat_failed", "could not start chat session")
		return
	}
	a.json(w, http.StatusOK, chatResponse{Messages: flow.Transcript()})
}

// chatFlow returns the session's flow, opening one gateway chat session on
// first use. The session keeps whichever flow wins a creation race.
func (a *App) chatFlow(r *http.Request, sess *session.Session) (*chat.Flow, error) {
	if flow := sess.Chat(); flow != nil {
		return flow, nil
	}
	cs, err := a.Gateway.NewChatSession(r.Context())
	if err != nil {
		return nil, err
	}
	locale := middleware.LocaleFromContext(r.Context())
	return sess.StoreChat(chat.NewFlow(cs, locale)), nil
}
