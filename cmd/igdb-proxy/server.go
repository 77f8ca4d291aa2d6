package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Sternrassler/igdb-api-client/pkg/client"
	"github.com/Sternrassler/igdb-api-client/pkg/cursor"
	"github.com/Sternrassler/igdb-api-client/pkg/metrics"
	"github.com/Sternrassler/igdb-api-client/pkg/pagination"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// HeaderScrollPage reports the position of a page in a stored scroll chain.
const HeaderScrollPage = "X-Scroll-Page"

type server struct {
	igdb    *client.Client
	redis   *redis.Client // nil without a cursor store
	store   *cursor.Store
	timeout time.Duration
	logger  zerolog.Logger
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)

	r.Get("/health", healthHandler)
	r.Get("/ready", readyHandler(s.redis))
	r.Handle("/metrics", metrics.Handler())

	r.Get("/igdb/{endpoint}", s.fetchHandler)
	r.Get("/igdb-scroll", s.scrollHandler)
	r.Get("/igdb-chain/{endpoint}/{chain}", s.chainHandler)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

// readyHandler pings Redis when a cursor store is configured.
func readyHandler(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := redisClient.Ping(ctx).Err(); err != nil {
				http.Error(w, "Redis unavailable", http.StatusServiceUnavailable)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

// fetchHandler proxies GET /igdb/{endpoint}?<parameters> to IGDB.
func (s *server) fetchHandler(w http.ResponseWriter, r *http.Request) {
	endpoint := chi.URLParam(r, "endpoint")
	if !client.IsEndpoint(endpoint) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown endpoint %q", endpoint))
		return
	}

	b, err := builderFromQuery(r.URL.RawQuery)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	resp, err := s.igdb.FetchResponse(ctx, endpoint, b)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	writeUpstream(w, resp, 0)
}

// scrollHandler continues a scroll: GET /igdb-scroll?next=<X-Next-Page>.
func (s *server) scrollHandler(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")
	if !client.IsScrollPath(next) {
		writeError(w, http.StatusBadRequest, "next must be a path returned in X-Next-Page")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	resp, err := s.igdb.ScrollResponse(ctx, next)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	writeUpstream(w, resp, 0)
}

// chainHandler returns the next page of a named scroll chain whose cursor is
// kept in Redis. The first call (or the first call after the chain ended or
// expired) seeds the chain with the query parameters.
func (s *server) chainHandler(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, "cursor store not configured")
		return
	}

	endpoint := chi.URLParam(r, "endpoint")
	chain := chi.URLParam(r, "chain")
	if !client.IsEndpoint(endpoint) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown endpoint %q", endpoint))
		return
	}

	b, err := builderFromQuery(r.URL.RawQuery)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	scroller := pagination.NewScroller(s.igdb, pagination.Config{Store: s.store, Chain: chain})

	var page *pagination.Page
	switch err := scroller.Resume(ctx, endpoint); {
	case err == nil:
		page, err = scroller.Next(ctx)
		if err != nil {
			s.pageError(w, err)
			return
		}
	case errors.Is(err, cursor.ErrCursorMiss):
		page, err = scroller.Seed(ctx, endpoint, b)
		if err != nil {
			s.pageError(w, err)
			return
		}
	default:
		s.logger.Error().Err(err).Str("chain", chain).Msg("Cursor lookup failed")
		writeError(w, http.StatusServiceUnavailable, "cursor store unavailable")
		return
	}

	writeUpstream(w, page.Response, page.Number)
}

func (s *server) pageError(w http.ResponseWriter, err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(apiErr.StatusCode)
		w.Write([]byte(apiErr.Body))
		return
	}
	s.upstreamError(w, err)
}

func (s *server) upstreamError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}
	s.logger.Warn().Err(err).Int("status", status).Msg("IGDB request failed")
	writeError(w, status, "IGDB request failed")
}

// writeUpstream copies an IGDB response, including its scroll headers.
func writeUpstream(w http.ResponseWriter, resp *client.Response, page int) {
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)

	for _, name := range []string{client.HeaderNextPage, client.HeaderCount} {
		if value := resp.Header.Get(name); value != "" {
			w.Header().Set(name, value)
		}
	}
	if page > 0 {
		w.Header().Set(HeaderScrollPage, fmt.Sprint(page))
	}

	w.WriteHeader(resp.StatusCode)
	w.Write(resp.Body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (s *server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("Request served")
	})
}
