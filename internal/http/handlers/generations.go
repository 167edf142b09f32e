package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"adstudio/internal/domain"
	"adstudio/internal/generation"
	"adstudio/internal/middleware"
)

const copyFailedMessage = "Failed to generate ad copy. The model may have returned an invalid response."

// Generate validates the request exactly as submitted, fills its empty
// styling fields, generates one background per requested size and returns
// the unsaved draft ad.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var edit domain.CompositionRequest
	files, err := a.decodeBody(w, r, "request", &edit)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.attachRequestImages(&edit, files); err != nil {
		a.fail(w, r, err)
		return
	}

	if err := edit.Validate(); err != nil {
		a.fail(w, r, err)
		return
	}

	ctx := r.Context()
	settings, err := a.Catalog.GetSettings(ctx)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	client, err := a.lookupClient(ctx, edit.ClientID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	req := domain.ResolveStyling(edit, client, settings)

	generate := func(ctx context.Context) (*domain.ComposableAd, error) {
		return a.Generator.GenerateDraft(ctx, req, client)
	}
	var ad *domain.ComposableAd
	if sid := middleware.SessionIDFromContext(ctx); sid != "" {
		ad, err = generation.Run(ctx, a.Sessions.Get(sid), generate)
	} else {
		ad, err = generate(ctx)
	}
	if err != nil {
		a.fail(w, r, err)
		return
	}

	// Uploaded references only live for this request.
	if err := domain.InlineAll(ad.ImageRefs()); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, ad)
}

// NewRequest returns a composition request initialized from the optional
// client, the stored settings and the hardcoded fallbacks. Clients call it
// once when a form opens; submitted requests are never re-defaulted.
func (a *App) NewRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	settings, err := a.Catalog.GetSettings(ctx)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	client, err := a.lookupClient(ctx, r.URL.Query().Get("clientId"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, domain.NewCompositionRequest(domain.CompositionRequest{}, client, settings, a.Now()))
}

func (a *App) lookupClient(ctx context.Context, id string) (*domain.Client, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	c, err := a.Catalog.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type copyRequest struct {
	Brief string `json:"brief"`
}

// Copy writes ad copy from a short product brief.
func (a *App) Copy(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req copyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, r, bodyError(err))
		return
	}
	adCopy, err := a.Generator.GenerateCopy(r.Context(), req.Brief)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			a.fail(w, r, err)
			return
		}
		a.Logger.Warn().Err(err).Msg("http: copy generation failed")
		a.error(w, http.StatusBadGateway, "generation_failed", copyFailedMessage)
		return
	}
	a.json(w, http.StatusOK, adCopy)
}
