package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"adstudio/internal/domain"
)

func (a *App) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := a.Catalog.ListFolders(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if folders == nil {
		folders = []domain.Folder{}
	}
	a.json(w, http.StatusOK, map[string]any{"items": folders})
}

func (a *App) SaveFolder(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var folder domain.Folder
	if err := json.NewDecoder(r.Body).Decode(&folder); err != nil {
		a.fail(w, r, bodyError(err))
		return
	}
	saved, err := a.Catalog.SaveFolder(r.Context(), folder)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, saved)
}

func (a *App) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := a.Catalog.DeleteFolder(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := a.Catalog.ListTemplates(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": templates})
}

func (a *App) GetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := a.Catalog.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, t)
}

// SaveTemplate stores a user template. A multipart body may carry the style
// image as the "templateStyleImage" file.
func (a *App) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	var t domain.Template
	files, err := a.decodeBody(w, r, "template", &t)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.attachRequestImages(&t.Request, files); err != nil {
		a.fail(w, r, err)
		return
	}
	saved, err := a.Catalog.SaveTemplate(r.Context(), t)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, saved)
}

func (a *App) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := a.Catalog.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := a.Catalog.ListClients(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	a.json(w, http.StatusOK, map[string]any{"items": clients})
}

func (a *App) GetClient(w http.ResponseWriter, r *http.Request) {
	c, err := a.Catalog.GetClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, c)
}

// SaveClient stores a brand profile. Fields left out of the body take the
// default palette and typography. A multipart body may carry the logo as the
// "logo" file.
func (a *App) SaveClient(w http.ResponseWriter, r *http.Request) {
	c := domain.NewClient("")
	files, err := a.decodeBody(w, r, "client", &c)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if logo, ok := files["logo"]; ok {
		c.Logo = logo
	}
	if err := c.Logo.CheckSize(a.MaxAssetBytes); err != nil {
		a.fail(w, r, err)
		return
	}
	saved, err := a.Catalog.SaveClient(r.Context(), c)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, saved)
}

func (a *App) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := a.Catalog.DeleteClient(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := a.Catalog.GetSettings(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, s)
}

// PutSettings replaces the stored settings with the body. Fields the body
// omits read back as defaults.
func (a *App) PutSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var patch domain.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		a.fail(w, r, bodyError(err))
		return
	}
	if err := a.Catalog.SetSettings(r.Context(), patch); err != nil {
		a.fail(w, r, err)
		return
	}
	s, err := a.Catalog.GetSettings(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, s)
}
