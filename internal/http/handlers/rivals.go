package handlers

import (
	"encoding/json"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rivalwatch/rival-watch-service/internal/logging"
)

const maxRivalsBody = 4 << 10

type rivalsPayload struct {
	Rivals []string `json:"rivals"`
}

// ListRivals serves the stored rival set.
func (h *Handler) ListRivals(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.requireRivals(w, r) {
		return
	}
	h.respondRivals(w, r)(h.rivals.Rivals(r.Context()))
}

// ReplaceRivals stores exactly the set in the request body.
func (h *Handler) ReplaceRivals(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.requireRivals(w, r) {
		return
	}
	var body rivalsPayload
	if err := json.NewDecoder(nethttp.MaxBytesReader(w, r.Body, maxRivalsBody)).Decode(&body); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}
	for _, raw := range body.Rivals {
		if _, ok := parseTeam(raw); !ok {
			writeError(w, r, nethttp.StatusBadRequest, "invalid team abbreviation", h.logger)
			return
		}
	}
	h.respondRivals(w, r)(h.rivals.Replace(r.Context(), body.Rivals))
}

// ToggleRival adds or removes one team.
func (h *Handler) ToggleRival(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.requireRivals(w, r) {
		return
	}
	team, ok := parseTeam(chi.URLParam(r, "team"))
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team abbreviation", h.logger)
		return
	}
	h.respondRivals(w, r)(h.rivals.Toggle(r.Context(), team))
}

// ClearRivals empties the set.
func (h *Handler) ClearRivals(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.requireRivals(w, r) {
		return
	}
	h.respondRivals(w, r)(h.rivals.Clear(r.Context()))
}

func (h *Handler) respondRivals(w nethttp.ResponseWriter, r *nethttp.Request) func([]string, error) {
	return func(set []string, err error) {
		logger := loggerFromContext(r, h.logger)
		if err != nil {
			logging.Error(logger, "rivals store failed", err)
			writeError(w, r, nethttp.StatusInternalServerError, "rivals store failed", logger)
			return
		}
		if set == nil {
			set = []string{}
		}
		writeJSON(w, nethttp.StatusOK, rivalsPayload{Rivals: set}, logger)
	}
}

func (h *Handler) requireRivals(w nethttp.ResponseWriter, r *nethttp.Request) bool {
	if h.rivals == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "rivals not configured", h.logger)
		return false
	}
	return true
}
