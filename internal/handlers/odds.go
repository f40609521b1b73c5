package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// GetOddsBySport returns the current snapshot's matchups for one sport in
// the upstream shape
func (h *Handler) GetOddsBySport(w http.ResponseWriter, r *http.Request) {
	sport := strings.ToLower(chi.URLParam(r, "sport"))
	if !h.isAvailable(sport) {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("unknown sport: %s", sport), nil)
		return
	}

	snap, err := h.snapshots.Current()
	if err != nil {
		h.respondError(w, statusFor(err), "matchups not loaded yet", err)
		return
	}

	h.respondJSON(w, http.StatusOK, snap.BySport(sport))
}
