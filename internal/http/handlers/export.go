package handlers

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"adstudio/internal/compositor"
	"adstudio/internal/domain"
	"adstudio/pkg/zip"
)

// ExportAd downloads one flattened card. index is 1-based and defaults to 1.
func (a *App) ExportAd(w http.ResponseWriter, r *http.Request) {
	format, err := compositor.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	index := 1
	if raw := strings.TrimSpace(r.URL.Query().Get("index")); raw != "" {
		if index, err = strconv.Atoi(raw); err != nil || index < 1 {
			a.fail(w, r, &domain.ValidationError{Field: "index", Message: "index must be a positive integer."})
			return
		}
	}
	ad, err := a.Catalog.LoadAd(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	exp, err := a.Exporter.ExportCard(r.Context(), ad, index-1, format)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", exp.MIMEType)
	w.Header().Set("Content-Disposition", attachment(exp.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(exp.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(exp.Data)
}

// ExportAdZip downloads every card of the ad as one archive.
func (a *App) ExportAdZip(w http.ResponseWriter, r *http.Request) {
	format, err := compositor.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	ad, err := a.Catalog.LoadAd(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	exports, err := a.Exporter.ExportAll(r.Context(), ad, format)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	assets := make([]zip.Asset, 0, len(exports))
	for _, exp := range exports {
		assets = append(assets, zip.Asset{Filename: exp.Filename, MIME: exp.MIMEType, Data: exp.Data})
	}
	archive, err := zip.ArchiveAssets(assets, a.Now())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	name := compositor.Slug(ad.Name)
	if name == "" {
		name = "ad"
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", attachment(name+".zip"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func attachment(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return fmt.Sprintf("attachment; filename=%q", filename)
}
