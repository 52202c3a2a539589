package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gridfold/catalogd/pkg/catalogd"
)

// catalogResponse is the success body of GET /catalog.
type catalogResponse struct {
	Tiles catalogd.CatalogView `json:"tiles"`
}

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error string `json:"error"`
}

// handleCatalog serves GET /catalog?zoom=<float>&triggeredByToggle=<bool>.
//
// zoom is required; a missing or unparseable value is a 400. A build
// failure (fetch or database) is a 500 with the error class in the body.
func (s *Service) handleCatalog(w http.ResponseWriter, r *http.Request) {
	zoomParam := r.URL.Query().Get("zoom")
	if zoomParam == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: missing required query parameter zoom", catalogd.ErrBadZoom))
		return
	}
	zoom, err := strconv.ParseFloat(zoomParam, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: zoom %q is not a number", catalogd.ErrBadZoom, zoomParam))
		return
	}

	// Absent or malformed toggle means a non-interactive request.
	interactive, _ := strconv.ParseBool(r.URL.Query().Get("triggeredByToggle"))

	view, err := s.Catalog(r.Context(), zoom, interactive)
	if err != nil {
		s.log.Error("catalog request for zoom %v failed: %v", zoom, err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, catalogResponse{Tiles: view})
}

// handleHealthz reports liveness. It deliberately does not touch the tile
// server or the registry database.
func (s *Service) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
