package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rivalwatch/rival-watch-service/internal/events"
	"github.com/rivalwatch/rival-watch-service/internal/http/requestutil"
	"github.com/rivalwatch/rival-watch-service/internal/logging"
	"github.com/rivalwatch/rival-watch-service/internal/snapshots"
	"github.com/rivalwatch/rival-watch-service/internal/timeutil"
)

// DayDeriver derives the events of one date.
type DayDeriver interface {
	DeriveDate(ctx context.Context, rivals []string, date string) events.DayResult
}

// SnapshotWriter persists an events snapshot.
type SnapshotWriter interface {
	WriteEventsSnapshot(date string, snapshot snapshots.EventsSnapshot) error
}

// AdminHandler exposes admin-only endpoints (e.g., snapshot refresh).
type AdminHandler struct {
	writer  SnapshotWriter
	deriver DayDeriver
	rivals  RivalManager
	token   string
	loc     *time.Location
	logger  *slog.Logger
	now     nowFunc
}

// NewAdminHandler constructs an AdminHandler. Dates default to today in loc.
func NewAdminHandler(writer SnapshotWriter, deriver DayDeriver, rivals RivalManager, token string, loc *time.Location, logger *slog.Logger) *AdminHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AdminHandler{
		writer:  writer,
		deriver: deriver,
		rivals:  rivals,
		token:   token,
		loc:     loc,
		logger:  logger,
		now:     time.Now,
	}
}

// RefreshSnapshots rewrites the events snapshot for ?date= (default today) from a live
// derivation. Guarded by ADMIN_TOKEN; returns 401 if missing or invalid.
func (h *AdminHandler) RefreshSnapshots(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if !h.authorize(r) {
		logging.Warn(logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", logger)
		return
	}
	if h.writer == nil || h.deriver == nil || h.rivals == nil {
		writeError(w, r, http.StatusServiceUnavailable, "snapshot writer not configured", logger)
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = timeutil.DateIn(h.now(), h.loc)
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		logging.Warn(logger, "admin snapshot invalid date", logging.FieldDate, date)
		writeError(w, r, http.StatusBadRequest, "invalid date format", logger)
		return
	}

	current, err := h.rivals.Rivals(r.Context())
	if err != nil {
		logging.Error(logger, "admin snapshot rivals unavailable", err)
		writeError(w, r, http.StatusInternalServerError, "rivals unavailable", logger)
		return
	}
	if len(current) == 0 {
		writeError(w, r, http.StatusBadRequest, "no rivals to snapshot", logger)
		return
	}

	day := h.deriver.DeriveDate(r.Context(), current, date)
	if day.Failed() {
		logging.Warn(logger, "admin snapshot fetch failed", logging.FieldDate, date, "err", day.Err)
		writeError(w, r, http.StatusBadGateway, "failed to fetch scores", logger)
		return
	}

	snap := snapshots.FromDay(day, current, h.now())
	if err := h.writer.WriteEventsSnapshot(date, snap); err != nil {
		logging.Error(logger, "admin snapshot write failed", err, logging.FieldDate, date)
		writeError(w, r, http.StatusInternalServerError, "failed to write snapshot", logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":   date,
		"events": len(day.Events),
		"status": "ok",
	}, logger)
	logging.Info(logger, "admin snapshot written", logging.FieldDate, date, logging.FieldCount, len(day.Events))
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := r.Header.Get("Authorization")
	want := "Bearer " + h.token
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
