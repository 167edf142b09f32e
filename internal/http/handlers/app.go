package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"adstudio/internal/catalog"
	"adstudio/internal/compositor"
	"adstudio/internal/domain"
	"adstudio/internal/generation"
	"adstudio/internal/infra"
)

// Catalog is the persistence surface the handlers need.
type Catalog interface {
	domain.AdRepository
	domain.FolderRepository
	domain.TemplateRepository
	domain.ClientRepository
	domain.SettingsRepository
}

// Generator produces draft ads and marketing copy.
type Generator interface {
	GenerateDraft(ctx context.Context, req domain.CompositionRequest, client *domain.Client) (*domain.ComposableAd, error)
	GenerateCopy(ctx context.Context, brief string) (domain.AdCopy, error)
}

// Exporter flattens saved ads into downloadable rasters.
type Exporter interface {
	ExportCard(ctx context.Context, ad *domain.ComposableAd, index int, f compositor.Format) (compositor.Export, error)
	ExportAll(ctx context.Context, ad *domain.ComposableAd, f compositor.Format) ([]compositor.Export, error)
}

// Options configures an App.
type Options struct {
	Catalog       Catalog
	Generator     Generator
	Exporter      Exporter
	Sessions      *generation.Sessions
	MaxAssetBytes int64
	StoreDriver   string
	Offline       bool
	Logger        *infra.Logger
	Now           func() time.Time
}

type App struct {
	Catalog       Catalog
	Generator     Generator
	Exporter      Exporter
	Sessions      *generation.Sessions
	MaxAssetBytes int64
	StoreDriver   string
	Offline       bool
	Logger        infra.Logger
	Now           func() time.Time
}

func NewApp(opts Options) *App {
	a := &App{
		Catalog:       opts.Catalog,
		Generator:     opts.Generator,
		Exporter:      opts.Exporter,
		Sessions:      opts.Sessions,
		MaxAssetBytes: opts.MaxAssetBytes,
		StoreDriver:   opts.StoreDriver,
		Offline:       opts.Offline,
		Logger:        infra.LoggerOrNop(opts.Logger),
		Now:           opts.Now,
	}
	if a.MaxAssetBytes <= 0 {
		a.MaxAssetBytes = domain.DefaultMaxAssetBytes
	}
	if a.Now == nil {
		a.Now = time.Now
	}
	if a.Sessions == nil {
		a.Sessions = generation.NewSessions(30 * time.Minute)
	}
	return a
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorBody{Error: errorDetail{Code: errCode, Message: message}})
}

// fail maps a domain error to its status and a single readable message.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		a.json(w, http.StatusUnprocessableEntity, errorBody{Error: errorDetail{
			Code:    "validation_failed",
			Message: verr.Message,
			Field:   verr.Field,
		}})
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnknownElement),
		errors.Is(err, domain.ErrElementHidden),
		errors.Is(err, domain.ErrAssetUnreadable):
		a.error(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
	case errors.Is(err, domain.ErrAssetTooLarge):
		a.error(w, http.StatusRequestEntityTooLarge, "asset_too_large", err.Error())
	case errors.Is(err, domain.ErrGenerationBlocked),
		errors.Is(err, domain.ErrGenerationEmpty),
		errors.Is(err, domain.ErrGenerationFailed),
		errors.Is(err, domain.ErrNothingGenerated):
		a.error(w, http.StatusBadGateway, "generation_failed", err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		a.error(w, http.StatusServiceUnavailable, "storage_unavailable", "Storage is unavailable. Please try again.")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrStaleGeneration):
		a.error(w, http.StatusConflict, "stale_generation", err.Error())
	case errors.Is(err, catalog.ErrBuiltInTemplate):
		a.error(w, http.StatusForbidden, "read_only", err.Error())
	case errors.Is(err, context.Canceled):
		a.Logger.Debug().Err(err).Str("path", r.URL.Path).Msg("http: request canceled")
	default:
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("http: unhandled error")
		a.error(w, http.StatusInternalServerError, "internal", "Something went wrong. Please try again.")
	}
}
