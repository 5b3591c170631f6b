package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-duel/internal/repository"
)

type matchHandler struct {
	logger  *slog.Logger
	matches matchSource
}

func newMatchHandler(logger *slog.Logger, matches matchSource) *matchHandler {
	return &matchHandler{
		logger:  logger.With("component", "rest", "handler", "match"),
		matches: matches,
	}
}

// ServeHTTP returns the snapshot of the running match, or of the last one.
func (that *matchHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	match, ok := that.matches.Current()
	if !ok {
		http.Error(w, "no match played yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(match); err != nil {
		that.logger.Error("failed to encode match", "error", err)
	}
}

type storedMatchHandler struct {
	logger *slog.Logger
	store  matchStore
}

func newStoredMatchHandler(logger *slog.Logger, store matchStore) *storedMatchHandler {
	return &storedMatchHandler{
		logger: logger.With("component", "rest", "handler", "stored_match"),
		store:  store,
	}
}

// ServeHTTP looks a running match up by id. Finished matches are no longer stored.
func (that *storedMatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	id := chi.URLParam(r, "id")

	match, err := that.store.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrMatchNotFound) {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("failed to get match", "matchID", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(match); err != nil {
		log.Error("failed to encode match", "error", err)
	}
}
