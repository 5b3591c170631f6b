package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-duel/internal/config"
	"github.com/rocketscienceinc/tictactoe-duel/internal/console"
	"github.com/rocketscienceinc/tictactoe-duel/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-duel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-duel/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-duel/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-duel/transport/rest"
)

var ErrAddrNotFound = errors.New("redis host is empty")

// RunApp - plays one match, printing it to out. Without an ops server it returns
// once both agents have stopped; with one it keeps serving the finished match
// until ctx is done or SIGINT/SIGTERM arrives. A signal during the match aborts it.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	collector := metrics.NewCollector()
	listeners := []usecase.Listener{
		console.NewPresenter(out, conf.Console.MoveDelay, conf.Console.ClearScreen),
		collector,
	}

	var serverOpts []rest.Option
	if conf.Redis.Enabled {
		if conf.Redis.Host == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedis(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		matchRepo := repository.NewMatchRepository(redisStorage)
		listeners = append(listeners, usecase.NewMatchMirror(logger, matchRepo))
		serverOpts = append(serverOpts, rest.WithMatchStore(matchRepo))
	}

	manager := usecase.NewMatchManager(logger, listeners...)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	if conf.HTTPPort != "" {
		server := rest.New(logger, conf.HTTPPort, manager, collector.Registry(), serverOpts...)
		go func() {
			httpErrCh <- server.Start(ctx)
		}()
	}

	matchErrCh := make(chan error, 1)
	go func() {
		_, err := manager.Play(ctx)
		matchErrCh <- err
	}()

	var matchErr error
	select {
	case err := <-httpErrCh:
		cancel()
		<-matchErrCh
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case matchErr = <-matchErrCh:
	}

	failed := matchErr != nil && !errors.Is(matchErr, context.Canceled)
	if failed {
		cancel()
	}

	if conf.HTTPPort != "" {
		if ctx.Err() == nil {
			log.Info("Match over, ops server keeps serving until interrupted", "port", conf.HTTPPort)
		}

		if err := <-httpErrCh; err != nil && !failed {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	switch {
	case failed:
		return fmt.Errorf("match failed: %w", matchErr)
	case matchErr != nil:
		log.Info("Match interrupted, shutting down")
	}

	return nil
}
