package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/XavierBriggs/fortuna/services/omnibet/internal/engine"
	"github.com/XavierBriggs/fortuna/services/omnibet/internal/metrics"
	"github.com/XavierBriggs/fortuna/services/omnibet/internal/snapshot"
	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/oddsmath"
)

const serviceName = "omnibet"

// SnapshotReader provides the current matchup snapshot
type SnapshotReader interface {
	Current() (*snapshot.Snapshot, error)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	snapshots    SnapshotReader
	engine       *engine.Engine
	sports       []string
	defaultStake float64
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(snapshots SnapshotReader, eng *engine.Engine, sports []string, defaultStake float64, m *metrics.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		snapshots:    snapshots,
		engine:       eng,
		sports:       append([]string(nil), sports...),
		defaultStake: defaultStake,
		metrics:      m,
		logger:       logger,
	}
}

type healthResponse struct {
	Status     string     `json:"status"`
	Service    string     `json:"service"`
	SnapshotID string     `json:"snapshot_id,omitempty"`
	FetchedAt  *time.Time `json:"fetched_at,omitempty"`
	Matchups   int        `json:"matchups"`
}

// HealthCheck reports whether a snapshot is available to serve
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshots.Current()
	if err != nil {
		h.respondJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:  "starting",
			Service: serviceName,
		})
		return
	}

	fetchedAt := snap.FetchedAt
	h.respondJSON(w, http.StatusOK, healthResponse{
		Status:     "healthy",
		Service:    serviceName,
		SnapshotID: snap.ID.String(),
		FetchedAt:  &fetchedAt,
		Matchups:   snap.Len(),
	})
}

// GetSports lists the sports matchups can be filtered by
func (h *Handler) GetSports(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string][]string{
		"sports": h.sports,
	})
}

func (h *Handler) isAvailable(sport string) bool {
	for _, s := range h.sports {
		if s == sport {
			return true
		}
	}
	return false
}

// statusFor maps engine and snapshot errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, oddsmath.ErrInvalidStake),
		errors.Is(err, engine.ErrInvalidPage),
		errors.Is(err, engine.ErrInvalidFilter),
		errors.Is(err, engine.ErrMalformedMatchup):
		return http.StatusBadRequest
	case errors.Is(err, snapshot.ErrNotReady):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondJSON encodes before writing the header so an unencodable body
// becomes a 500 instead of an empty 200.
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to encode response", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body = append(body, '\n')
	if _, err := w.Write(body); err != nil {
		h.logger.Warn("failed to write response", zap.Int("status", status), zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}

	if err != nil {
		if status >= http.StatusInternalServerError {
			h.logger.Error(message, zap.Error(err))
		} else {
			h.logger.Debug(message, zap.Error(err))
		}
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		h.logger.Error("error encoding error response", zap.Error(err))
	}
}
