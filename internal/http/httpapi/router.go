package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/promptstudio/internal/http/handlers"
	"github.com/promptstudio/internal/infra"
	"github.com/promptstudio/internal/middleware"
)

// NewRouter wires the API surface onto a chi router with the ambient
// middleware stack.
func NewRouter(app *handlers.App, cfg *infra.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
		middleware.I18N("en"),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", app.SessionCreate)
		r.Route("/{session_id}", func(r chi.Router) {
			r.Delete("/", app.SessionDelete)

			r.Get("/prompt", app.PromptGet)
			r.Put("/prompt/full", app.PromptFullPut)
			r.Put("/prompt/fields/{field}", app.PromptFieldPut)

			r.Post("/generate", app.ImageGenerate)
			r.Post("/edit", app.ImageEdit)
			r.Get("/images/generated/download", app.ImageGeneratedDownload)
			r.Get("/images/edited/download", app.ImageEditedDownload)
			r.Get("/images/archive", app.ImageArchive)

			r.Post("/chat", app.ChatSend)
			r.Get("/chat", app.ChatTranscript)
		})
	})

	return r
}
