package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"adstudio/internal/domain"
)

func (a *App) ListAds(w http.ResponseWriter, r *http.Request) {
	var filter domain.AdFilter
	switch folder := strings.TrimSpace(r.URL.Query().Get("folder")); folder {
	case "", "all":
	case "unassigned":
		filter.Unassigned = true
	default:
		filter.FolderID = folder
	}
	ads, err := a.Catalog.ListAds(r.Context(), filter)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if ads == nil {
		ads = []domain.ComposableAd{}
	}
	a.json(w, http.StatusOK, map[string]any{"items": ads})
}

func (a *App) GetAd(w http.ResponseWriter, r *http.Request) {
	ad, err := a.Catalog.LoadAd(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, ad)
}

// SaveAd creates an ad, or replaces it when the body carries a known id.
func (a *App) SaveAd(w http.ResponseWriter, r *http.Request) {
	a.saveAd(w, r, "")
}

// ReplaceAd saves the body under the id in the path.
func (a *App) ReplaceAd(w http.ResponseWriter, r *http.Request) {
	a.saveAd(w, r, chi.URLParam(r, "id"))
}

func (a *App) saveAd(w http.ResponseWriter, r *http.Request, id string) {
	var ad domain.ComposableAd
	files, err := a.decodeBody(w, r, "ad", &ad)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if id != "" {
		if _, err := a.Catalog.LoadAd(r.Context(), id); err != nil {
			a.fail(w, r, err)
			return
		}
		ad.ID = id
	}
	if err := a.attachRequestImages(&ad.Request, files); err != nil {
		a.fail(w, r, err)
		return
	}
	attachElementImages(&ad, files)

	created := !ad.IsPersisted()
	saved, err := a.Catalog.SaveAd(r.Context(), &ad)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	a.json(w, status, saved)
}

// attachElementImages lets uploads for the product and logo slots also feed
// the matching overlay when the ad carries no image there yet.
func attachElementImages(ad *domain.ComposableAd, files map[string]*domain.ImageRef) {
	for field, kind := range map[string]domain.ElementKind{"productImage": domain.ProductImage, "logoImage": domain.Logo} {
		ref, ok := files[field]
		if !ok {
			continue
		}
		el := ad.Element(kind)
		if el.Image.IsZero() {
			el.Image = ref
			ad.SetElement(el)
		}
	}
}

func (a *App) DeleteAd(w http.ResponseWriter, r *http.Request) {
	if err := a.Catalog.DeleteAd(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type patchAdRequest struct {
	Name     *string `json:"name"`
	FolderID *string `json:"folderId"`
}

// PatchAd renames an ad and/or moves it to a folder. An empty folderId
// moves the ad out of every folder.
func (a *App) PatchAd(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req patchAdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, r, bodyError(err))
		return
	}
	id := chi.URLParam(r, "id")
	ad, err := a.Catalog.LoadAd(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if req.Name != nil {
		if ad, err = a.Catalog.RenameAd(r.Context(), id, *req.Name); err != nil {
			a.fail(w, r, err)
			return
		}
	}
	if req.FolderID != nil {
		if ad, err = a.Catalog.AssignFolder(r.Context(), id, *req.FolderID); err != nil {
			a.fail(w, r, err)
			return
		}
	}
	a.json(w, http.StatusOK, ad)
}

type saveTemplateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SaveAdAsTemplate snapshots a saved ad as a user template.
func (a *App) SaveAdAsTemplate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req saveTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, r, bodyError(err))
		return
	}
	ad, err := a.Catalog.LoadAd(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = ad.Name
	}
	saved, err := a.Catalog.SaveTemplate(r.Context(), domain.TemplateFromAd(ad, name, req.Description))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, saved)
}
