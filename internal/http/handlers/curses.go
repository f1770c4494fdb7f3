package handlers

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
)

// TeamCurses serves the relevance-partitioned curses for one team.
func (h *Handler) TeamCurses(w nethttp.ResponseWriter, r *nethttp.Request) {
	team, ok := h.teamParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, nethttp.StatusOK, h.curses.ComputeWithContext(r.Context(), team), h.logger)
}

// BatchCurses serves ?teams=A,B as a map of team to curses.
func (h *Handler) BatchCurses(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.requireCurses(w, r) {
		return
	}
	list, valid := parseTeamList(r.URL.Query().Get("teams"))
	if !valid {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team abbreviation", h.logger)
		return
	}
	if len(list) == 0 {
		writeError(w, r, nethttp.StatusBadRequest, "teams query parameter required", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.curses.ComputeForTeams(r.Context(), list), h.logger)
}

// WorstCurse serves the single highest ranked curse, or 404 when there is none.
func (h *Handler) WorstCurse(w nethttp.ResponseWriter, r *nethttp.Request) {
	team, ok := h.teamParam(w, r)
	if !ok {
		return
	}
	worst := h.curses.WorstCurse(r.Context(), team)
	if worst == nil {
		writeError(w, r, nethttp.StatusNotFound, "no curses for team", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, worst, h.logger)
}

// GameContext serves today's game context for a team; null when it does not play.
func (h *Handler) GameContext(w nethttp.ResponseWriter, r *nethttp.Request) {
	team, ok := h.teamParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, nethttp.StatusOK, h.curses.TodayGameContext(r.Context(), team), h.logger)
}

func (h *Handler) teamParam(w nethttp.ResponseWriter, r *nethttp.Request) (string, bool) {
	if !h.requireCurses(w, r) {
		return "", false
	}
	team, ok := parseTeam(chi.URLParam(r, "team"))
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team abbreviation", h.logger)
		return "", false
	}
	return team, true
}

func (h *Handler) requireCurses(w nethttp.ResponseWriter, r *nethttp.Request) bool {
	if h.curses == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "curses not configured", h.logger)
		return false
	}
	return true
}
