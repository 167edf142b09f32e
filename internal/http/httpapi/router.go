package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"adstudio/internal/http/handlers"
	"adstudio/internal/middleware"
)

// RouterOptions configures the cross-cutting middleware.
type RouterOptions struct {
	Logger          zerolog.Logger
	AllowedOrigins  []string
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/requests/new", app.NewRequest)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
		r.Post("/v1/generations", app.Generate)
		r.Post("/v1/copy", app.Copy)
	})

	r.Route("/v1/ads", func(r chi.Router) {
		r.Get("/", app.ListAds)
		r.Post("/", app.SaveAd)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", app.GetAd)
			r.Put("/", app.ReplaceAd)
			r.Patch("/", app.PatchAd)
			r.Delete("/", app.DeleteAd)
			r.Get("/export", app.ExportAd)
			r.Get("/export.zip", app.ExportAdZip)
			r.Post("/template", app.SaveAdAsTemplate)
		})
	})

	r.Route("/v1/folders", func(r chi.Router) {
		r.Get("/", app.ListFolders)
		r.Post("/", app.SaveFolder)
		r.Delete("/{id}", app.DeleteFolder)
	})

	r.Route("/v1/templates", func(r chi.Router) {
		r.Get("/", app.ListTemplates)
		r.Post("/", app.SaveTemplate)
		r.Get("/{id}", app.GetTemplate)
		r.Delete("/{id}", app.DeleteTemplate)
	})

	r.Route("/v1/clients", func(r chi.Router) {
		r.Get("/", app.ListClients)
		r.Post("/", app.SaveClient)
		r.Get("/{id}", app.GetClient)
		r.Delete("/{id}", app.DeleteClient)
	})

	r.Get("/v1/settings", app.GetSettings)
	r.Put("/v1/settings", app.PutSettings)

	return r
}
