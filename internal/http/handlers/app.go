package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/promptstudio/internal/infra"
	"github.com/promptstudio/internal/providers/gemini"
	"github.com/promptstudio/internal/session"
	"github.com/promptstudio/internal/storage"
)

// App is the handler container: gateway, session registry, optional export
// store, and the debounce applied to new prompt engines.
type App struct {
	Logger   infra.Logger
	Gateway  gemini.Gateway
	Sessions *session.Store
	Files    *storage.FileStore
	Debounce time.Duration
}

func NewApp(logger infra.Logger, gw gemini.Gateway, sessions *session.Store, files *storage.FileStore, debounce time.Duration) *App {
	return &App{
		Logger:   logger,
		Gateway:  gw,
		Sessions: sessions,
		Files:    files,
		Debounce: debounce,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]string{"error": kind, "message": message})
}
