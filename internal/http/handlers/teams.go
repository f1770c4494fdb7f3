package handlers

import (
	nethttp "net/http"

	"github.com/rivalwatch/rival-watch-service/internal/logging"
)

// Teams serves the league teams sorted by name.
func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	if h.teams == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "teams not configured", logger)
		return
	}
	list, err := h.teams.Teams(r.Context())
	if err != nil {
		logging.Warn(logger, "teams unavailable", "err", err)
		writeError(w, r, nethttp.StatusBadGateway, "teams unavailable", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, list, logger)
}
