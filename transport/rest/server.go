package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type matchSource interface {
	Current() (entity.Match, bool)
}

// Server is the operational HTTP endpoint: liveness, metrics and the state of
// the current match.
type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

type matchStore interface {
	GetByID(ctx context.Context, id string) (*entity.Match, error)
}

type Option func(router chi.Router, logger *slog.Logger)

// WithMatchStore serves /matches/{id} from the live match store.
func WithMatchStore(store matchStore) Option {
	return func(router chi.Router, logger *slog.Logger) {
		router.Get("/matches/{id}", newStoredMatchHandler(logger, store).ServeHTTP)
	}
}

func New(logger *slog.Logger, port string, matches matchSource, gatherer prometheus.Gatherer, opts ...Option) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      NewRouter(logger, matches, gatherer, opts...),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

func NewRouter(logger *slog.Logger, matches matchSource, gatherer prometheus.Gatherer, opts ...Option) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/ping", newPingHandler().PingHandler)
	router.Get("/match", newMatchHandler(logger, matches).ServeHTTP)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	for _, opt := range opts {
		opt(router, logger)
	}

	return router
}

// Start serves until ctx is done, then shuts the server down gracefully.
func (that *Server) Start(ctx context.Context) error {
	log := that.logger.With("method", "Start")

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "addr", that.srv.Addr)
		if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := that.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	log.Info("HTTP server stopped")

	return nil
}
