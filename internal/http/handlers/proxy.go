package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rivalwatch/rival-watch-service/internal/logging"
	"github.com/rivalwatch/rival-watch-service/internal/providers"
)

const proxyCacheControl = "public, max-age=60"

// Fetcher returns raw upstream bodies for a path relative to the API root.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// ProxyHandler passes GET requests through to the NHL API, via the response cache.
type ProxyHandler struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewProxyHandler constructs a ProxyHandler. A nil fetcher answers 503.
func NewProxyHandler(fetcher Fetcher, logger *slog.Logger) *ProxyHandler {
	return &ProxyHandler{fetcher: fetcher, logger: logger}
}

func (p *ProxyHandler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, p.logger)
	if p.fetcher == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "NHL proxy not configured", logger)
		return
	}

	path := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if path == "" || hasDotSegment(path) {
		writeError(w, r, nethttp.StatusBadRequest, "invalid NHL API path", logger)
		return
	}
	if r.URL.RawQuery != "" {
		path += "?" + r.URL.RawQuery
	}

	body, err := p.fetcher.Fetch(r.Context(), path)
	if err != nil {
		p.writeUpstreamError(w, r, logger, path, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", proxyCacheControl)
	w.WriteHeader(nethttp.StatusOK)
	if _, err := w.Write(body); err != nil {
		logging.Warn(logger, "proxy write failed", logging.FieldPath, path, "err", err)
	}
}

// writeUpstreamError mirrors upstream statuses; anything else is a 500.
func (p *ProxyHandler) writeUpstreamError(w nethttp.ResponseWriter, r *nethttp.Request, logger *slog.Logger, path string, err error) {
	status := 0
	if rl, ok := providers.AsRateLimitError(err); ok {
		status = rl.StatusCode
	} else if st, ok := providers.AsStatusError(err); ok {
		status = st.StatusCode
	}

	if status > 0 {
		logging.Warn(logger, "nhl proxy upstream error", logging.FieldPath, path, logging.FieldStatusCode, status)
		writeJSON(w, status, map[string]string{"error": "NHL API error"}, logger)
		return
	}
	if r.Context().Err() == nil {
		logging.Error(logger, "nhl proxy failed", err, logging.FieldPath, path)
	}
	writeJSON(w, nethttp.StatusInternalServerError, map[string]string{"error": "Failed to fetch from NHL API"}, logger)
}

func hasDotSegment(path string) bool {
	for _, seg := range strings.Split(strings.SplitN(path, "?", 2)[0], "/") {
		if seg == "." || seg == ".." {
			return true
		}
	}
	return false
}
