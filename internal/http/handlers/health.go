package handlers

import (
	"net/http"
)

type healthResponse struct {
	Status     string `json:"status"`
	Store      string `json:"store,omitempty"`
	Generation string `json:"generation"`
	Error      string `json:"error,omitempty"`
}

// Health reports the store driver and generation mode, and reads the settings
// record to check the catalog is reachable.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Store: a.StoreDriver, Generation: "gemini"}
	if a.Offline {
		resp.Generation = "synthetic"
	}
	if _, err := a.Catalog.GetSettings(r.Context()); err != nil {
		a.Logger.Warn().Err(err).Msg("http: health check storage read failed")
		resp.Status = "degraded"
		resp.Error = err.Error()
		a.json(w, http.StatusServiceUnavailable, resp)
		return
	}
	a.json(w, http.StatusOK, resp)
}
