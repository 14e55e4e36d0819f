package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/promptstudio/internal/domain"
	"github.com/promptstudio/internal/promptsync"
)

type promptValueRequest struct {
	Value string `json:"value"`
}

type promptResponse struct {
	Phase  string                   `json:"phase"`
	Prompt *domain.StructuredPrompt `json:"prompt,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

func snapshotResponse(snap promptsync.Snapshot) promptResponse {
	resp := promptResponse{Phase: snap.Phase.String(), Prompt: snap.Prompt}
	if snap.LastError != nil {
		resp.Error = "analysis failed"
	}
	return resp
}

// PromptGet returns the current phase and prompt snapshot.
func (a *App) PromptGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, snapshotResponse(sess.Engine.Snapshot()))
}

// PromptFieldPut edits one named field. The full prompt is patched locally;
// no gateway call happens.
func (a *App) PromptFieldPut(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	var req promptValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	field := chi.URLParam(r, "field")
	prompt, err := sess.Engine.SetField(field, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownField):
			a.error(w, http.StatusBadRequest, "bad_request", "unknown prompt field")
		case errors.Is(err, domain.ErrPromptNotReady):
			a.error(w, http.StatusConflict, "not_ready", "prompt analysis has not completed")
		default:
			a.error(w, http.StatusInternalServerError, "internal", "field edit failed")
		}
		return
	}
	a.json(w, http.StatusOK, promptResponse{Phase: promptsync.PhaseReady.String(), Prompt: prompt})
}

// PromptFullPut commits raw full-prompt text and schedules the debounced
// re-analysis. The response is the immediate state; the client polls
// PromptGet for the re-analyzed fields.
func (a *App) PromptFullPut(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	var req promptValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := sess.Engine.SetFullPrompt(req.Value); err != nil {
		a.error(w, http.StatusConflict, "not_ready", "prompt analysis has not completed")
		return
	}
	a.json(w, http.StatusAccepted, snapshotResponse(sess.Engine.Snapshot()))
}
