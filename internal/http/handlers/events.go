package handlers

import (
	"errors"
	"io/fs"
	nethttp "net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/rivalwatch/rival-watch-service/internal/events"
	"github.com/rivalwatch/rival-watch-service/internal/logging"
	"github.com/rivalwatch/rival-watch-service/internal/rivals"
	"github.com/rivalwatch/rival-watch-service/internal/timeutil"
)

const maxLookbackDays = 14

// Events serves negative events. ?date= reads a stored snapshot; ?rivals= derives live for
// that set; otherwise the poller's feed is served when it matches the stored rival set.
func (h *Handler) Events(w nethttp.ResponseWriter, r *nethttp.Request) {
	q := r.URL.Query()
	logger := loggerFromContext(r, h.logger)

	if date := strings.TrimSpace(q.Get("date")); date != "" {
		h.eventsSnapshot(w, r, date)
		return
	}

	days := h.days
	if raw := strings.TrimSpace(q.Get("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLookbackDays {
			writeError(w, r, nethttp.StatusBadRequest, "days must be between 1 and 14", logger)
			return
		}
		days = n
	}
	if h.deriver == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "event feed not configured", logger)
		return
	}

	if raw, ok := q["rivals"]; ok {
		set, valid := parseTeamList(strings.Join(raw, ","))
		if !valid {
			writeError(w, r, nethttp.StatusBadRequest, "invalid team abbreviation", logger)
			return
		}
		writeJSON(w, nethttp.StatusOK, h.deriver.Derive(r.Context(), rivals.Normalize(set), days), logger)
		return
	}

	if h.rivals == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "rivals not configured", logger)
		return
	}
	current, err := h.rivals.Rivals(r.Context())
	if err != nil {
		logging.Error(logger, "rivals unavailable", err)
		writeError(w, r, nethttp.StatusInternalServerError, "rivals unavailable", logger)
		return
	}
	if feed, ok := h.storedFeed(current, days); ok {
		logging.Info(logger, "served stored feed", logging.FieldCount, len(feed.Events))
		writeJSON(w, nethttp.StatusOK, feed, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.deriver.Derive(r.Context(), current, days), logger)
}

// storedFeed returns the poller's feed when it was derived for the same rivals and window.
func (h *Handler) storedFeed(current []string, days int) (events.Feed, bool) {
	if h.feed == nil || days != h.days {
		return events.Feed{}, false
	}
	feed, ok := h.feed.Feed()
	if !ok || !slices.Equal(feed.Rivals, current) {
		return events.Feed{}, false
	}
	return feed, true
}

func (h *Handler) eventsSnapshot(w nethttp.ResponseWriter, r *nethttp.Request, date string) {
	logger := loggerFromContext(r, h.logger)
	if _, err := timeutil.ParseDate(date); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
		return
	}
	if h.snaps == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "snapshots not configured", logger)
		return
	}
	snap, err := h.snaps.LoadEvents(date)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, r, nethttp.StatusNotFound, "snapshot not found", logger)
			return
		}
		logging.Warn(logger, "snapshot load failed", logging.FieldDate, date, "err", err)
		writeError(w, r, nethttp.StatusBadGateway, "snapshot unavailable", logger)
		return
	}
	logging.Info(logger, "served snapshot events", logging.FieldDate, date, logging.FieldCount, len(snap.Events))
	writeJSON(w, nethttp.StatusOK, snap, logger)
}
