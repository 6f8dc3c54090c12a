package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/pfrederiksen/afl-tables/internal/afl"
	"github.com/pfrederiksen/afl-tables/internal/filter"
	"github.com/pfrederiksen/afl-tables/internal/logger"
	"github.com/pfrederiksen/afl-tables/internal/scraper"
)

// RequestIDHeader carries the per-request identifier
const RequestIDHeader = "X-Request-ID"

// ShutdownTimeout bounds how long in-flight requests get to finish
const ShutdownTimeout = 10 * time.Second

// SeasonFetcher scrapes one season. *scraper.Scraper satisfies it.
type SeasonFetcher interface {
	FetchSeason(ctx context.Context, year int) ([]afl.Round, error)
}

// Server exposes seasons over HTTP
type Server struct {
	fetcher SeasonFetcher
	log     *logger.Logger
	metrics *logger.Metrics
	router  *mux.Router
}

type ctxKey struct{}

// NewServer builds the router around fetcher
func NewServer(fetcher SeasonFetcher, log *logger.Logger, metrics *logger.Metrics) *Server {
	s := &Server{
		fetcher: fetcher,
		log:     log,
		metrics: metrics,
	}

	r := mux.NewRouter()
	r.Use(s.requestID)
	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/metrics", s.metricsHandler).Methods(http.MethodGet)
	r.HandleFunc("/seasons/{year:[0-9]{4}}", s.seasonHandler).Methods(http.MethodGet)
	s.router = r

	return s
}

// Handler returns the router wrapped in panic recovery and access logging
func (s *Server) Handler() http.Handler {
	recovered := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{s.log}),
		handlers.PrintRecoveryStack(false),
	)(s.router)
	return handlers.CombinedLoggingHandler(s.log.AccessWriter(), recovered)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.log.Info("API listening", logger.Fields{"addr": ln.Addr().String()})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("API shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// requestID tags every request with an ID, reusing one supplied by the client
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		s.metrics.IncrCounter("api.requests")
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// RequestID returns the request ID stored on ctx, if any
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) metricsHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.GetSnapshot())
}

func (s *Server) seasonHandler(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %s", scraper.ErrInvalidYear, mux.Vars(r)["year"]))
		return
	}

	f, err := filterFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	start := time.Now()
	rounds, err := s.fetcher.FetchSeason(r.Context(), year)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log.Debug("Served season", logger.Fields{
		"request_id": RequestID(r.Context()),
		"year":       year,
		"filter":     f.String(),
		"duration":   time.Since(start).String(),
	})

	writeJSON(w, http.StatusOK, afl.Season{Year: year, Rounds: f.Apply(rounds)})
}

// badRequest marks errors caused by the request itself
type badRequest struct {
	err error
}

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

func filterFromQuery(r *http.Request) (*filter.Filter, error) {
	q := r.URL.Query()
	f := filter.NewFilter()
	f.Teams = append(f.Teams, q["team"]...)
	f.Venues = append(f.Venues, q["venue"]...)

	for name, dst := range map[string]*bool{"finals_only": &f.FinalsOnly, "no_byes": &f.ExcludeByes} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, badRequest{fmt.Errorf("invalid %s value %q", name, v)}
		}
		*dst = b
	}

	return f, nil
}

// statusFor maps an error to the response status
func statusFor(err error) int {
	var fetchErr *scraper.FetchError
	var reqErr badRequest

	switch {
	case errors.Is(err, scraper.ErrInvalidYear), errors.As(err, &reqErr):
		return http.StatusBadRequest
	case errors.As(err, &fetchErr):
		if fetchErr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	fields := logger.Fields{
		"request_id": RequestID(r.Context()),
		"path":       r.URL.Path,
		"status":     status,
	}
	if status >= http.StatusInternalServerError {
		s.metrics.IncrCounter("api.errors")
		s.log.Error("Request failed", fields, err)
	} else {
		s.log.Warn("Request rejected", fields)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// recoveryLogger adapts the logger to handlers.RecoveryHandlerLogger
type recoveryLogger struct {
	l *logger.Logger
}

func (r recoveryLogger) Println(v ...interface{}) {
	r.l.Error("Handler panic", logger.Fields{"panic": fmt.Sprint(v...)}, nil)
}
