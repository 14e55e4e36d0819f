package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/promptstudio/internal/domain"
	"github.com/promptstudio/internal/promptsync"
	"github.com/promptstudio/internal/session"
)

const maxUploadBytes = 10 << 20

// SessionCreate accepts a multipart image upload, registers a session around
// it, and kicks the initial analysis in the background. The client polls the
// prompt endpoint for the result.
func (a *App) SessionCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "multipart image upload required")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "image file is required")
		return
	}
	defer func() {
		_ = file.Close()
	}()
	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "could not read image")
		return
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" || !strings.HasPrefix(mime, "image/") {
		mime = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mime, "image/") {
		a.error(w, http.StatusUnsupportedMediaType, "unsupported_media", "only image uploads are accepted")
		return
	}

	img := &domain.UploadedImage{Data: data, MIME: mime}
	engine := promptsync.New(a.Gateway, img, promptsync.Options{
		Debounce: a.Debounce,
		Logger:   &a.Logger,
	})
	sess := a.Sessions.Create(img, engine)

	// The upload request returns immediately; analysis outlives it.
	go func() {
		if err := engine.StartAnalysis(context.Background()); err != nil {
			a.Logger.Error().Err(err).Str("session_id", sess.ID).Msg("initial analysis failed")
		}
	}()

	a.json(w, http.StatusAccepted, map[string]string{
		"session_id": sess.ID,
		"image":      img.DataURL(),
	})
}

// SessionDelete clears the session: the uploaded image, prompt state, chat
// transcript, and any pending debounce all go with it.
func (a *App) SessionDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session_id")
	if err := a.Sessions.Delete(id); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "session not found")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (a *App) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "session_id")
	sess, err := a.Sessions.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "session not found")
		} else {
			a.error(w, http.StatusInternalServerError, "internal", "session lookup failed")
		}
		return nil, false
	}
	return sess, true
}
