package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/promptstudio/internal/domain"
	"github.com/promptstudio/pkg/zip"
)

const (
	generatedFilename = "generated-image.jpg"
	editedFilename    = "edited-image.png"
	archiveFilename   = "session-images.zip"
)

// ImageGenerate fires one generation call from the session's current full
// prompt and replaces the generated-image slot wholesale. Concurrent clicks
// are not deduplicated; disabling the button is the client's concern.
func (a *App) ImageGenerate(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	asset, err := sess.Engine.Generate(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrPromptNotReady) {
			a.error(w, http.StatusConflict, "not_ready", "prompt analysis has not completed")
			return
		}
		a.error(w, http.StatusBadGateway, "generation_failed", "image generation failed")
		return
	}
	sess.SetGenerated(asset)
	a.mirror(sess.ID, generatedFilename, asset.Data)
	a.json(w, http.StatusOK, map[string]string{"image": asset.DataURL()})
}

type imageEditRequest struct {
	Instruction string `json:"instruction"`
}

// ImageEdit applies one free-text instruction to the original upload. Each
// invocation is independent; edits never chain onto prior results.
func (a *App) ImageEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	var req imageEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Instruction == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "instruction is required")
		return
	}
	asset, err := a.Gateway.EditImage(r.Context(), sess.Image, req.Instruction)
	if err != nil {
		a.error(w, http.StatusBadGateway, "edit_failed", "image edit failed")
		return
	}
	sess.SetEdited(asset)
	a.mirror(sess.ID, editedFilename, asset.Data)
	a.json(w, http.StatusOK, map[string]string{"image": asset.DataURL()})
}

// ImageGeneratedDownload serves the latest generated image as an attachment.
func (a *App) ImageGeneratedDownload(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	a.download(w, sess.Generated(), generatedFilename)
}

// ImageEditedDownload serves the latest edited image as an attachment.
func (a *App) ImageEditedDownload(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	a.download(w, sess.Edited(), editedFilename)
}

// ImageArchive bundles whichever images the session holds into one zip.
func (a *App) ImageArchive(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	var entries []zip.Entry
	if asset := sess.Generated(); asset != nil {
		entries = append(entries, zip.Entry{Filename: generatedFilename, Data: asset.Data})
	}
	if asset := sess.Edited(); asset != nil {
		entries = append(entries, zip.Entry{Filename: editedFilename, Data: asset.Data})
	}
	archive, err := zip.Archive(entries)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "no images available")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archiveFilename))
	_, _ = w.Write(archive)
}

func (a *App) download(w http.ResponseWriter, asset *domain.ImageAsset, filename string) {
	if asset == nil {
		a.error(w, http.StatusNotFound, "not_found", "no image available")
		return
	}
	w.Header().Set("Content-Type", asset.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(asset.Data)
}

// mirror exports a copy to the asset directory when one is configured.
// Export failures are logged, never surfaced: the in-memory asset is the
// source of truth.
func (a *App) mirror(sessionID, filename string, data []byte) {
	if err := a.Files.Mirror(sessionID, filename, data); err != nil {
		a.Logger.Warn().Err(err).Str("session_id", sessionID).Str("file", filename).Msg("asset export failed")
	}
}
