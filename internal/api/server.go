// Package api serves the board over HTTP for a browser front end.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v6"
	"github.com/didip/tollbooth/v6/limiter"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	columnservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/column"
	taskservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/task"
)

// Option configures the handler built by NewHandler
type Option func(*handler)

// WithLogger sets the request logger
func WithLogger(logger *slog.Logger) Option {
	return func(h *handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithRateLimit limits each client to rps requests per second.
// Zero or negative disables limiting.
func WithRateLimit(rps float64) Option {
	return func(h *handler) {
		h.rateLimit = rps
	}
}

type handler struct {
	tasks     taskservice.Service
	columns   columnservice.Service
	logger    *slog.Logger
	rateLimit float64
}

// NewHandler returns the router for the board API
func NewHandler(tasks taskservice.Service, columns columnservice.Service, opts ...Option) http.Handler {
	h := &handler{
		tasks:   tasks,
		columns: columns,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(h.logRequests)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.Get("/board", h.getBoard)

	router.Route("/columns", func(r chi.Router) {
		r.Get("/", h.listColumns)
		r.Patch("/{status}", h.renameColumn)
	})

	router.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.listTasks)
		r.Post("/", h.createTask)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getTask)
			r.Patch("/", h.updateTask)
			r.Delete("/", h.deleteTask)
			r.Post("/move", h.moveTask)
		})
	})

	router.Post("/drag-end", h.dragEnd)

	if h.rateLimit <= 0 {
		return router
	}

	lmt := tollbooth.NewLimiter(h.rateLimit, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Second})
	lmt.SetMessageContentType("application/json; charset=utf-8")
	lmt.SetMessage(`{"error":"rate limit exceeded","code":"RATE_LIMITED"}`)
	return tollbooth.LimitHandler(lmt, router)
}

// NewServer wraps handler in an http.Server with conservative timeouts
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		Addr:              addr,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// ListenAndServe runs srv until ctx is cancelled, then shuts it down gracefully
func ListenAndServe(ctx context.Context, srv *http.Server) error {
	errC := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
		close(errC)
	}()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errC
}

// logRequests logs one line per request at debug level, or warn for 5xx
func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		level := slog.LevelDebug
		if ww.Status() >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		h.logger.Log(r.Context(), level, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
