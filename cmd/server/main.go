// Package main runs the party game server: configuration, word bank,
// game modules and the HTTP/websocket listener.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/scythe504/partyroom-backend/internal"
	"github.com/scythe504/partyroom-backend/internal/config"
	"github.com/scythe504/partyroom-backend/internal/game"
	"github.com/scythe504/partyroom-backend/internal/observability"
	"github.com/scythe504/partyroom-backend/internal/pictionary"
	"github.com/scythe504/partyroom-backend/internal/quiz"
	"github.com/scythe504/partyroom-backend/internal/random"
	"github.com/scythe504/partyroom-backend/internal/server"
	"github.com/scythe504/partyroom-backend/internal/storage/postgres"
	"github.com/scythe504/partyroom-backend/internal/websocket"
	"github.com/scythe504/partyroom-backend/internal/words"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rnd random.Source = random.NewCrypto()
	if cfg.Game.Seed != 0 {
		rnd = random.NewSeeded(cfg.Game.Seed)
	}

	bank, err := loadWords(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("loading words", zap.Error(err))
	}
	logger.Info("word bank loaded",
		zap.String("source", cfg.Words.Source),
		zap.Strings("categories", bank.Categories()),
		zap.Int("words", bank.Len()),
	)

	clock := internal.RealClock()
	quizModule := quiz.New(quiz.NewOpenTDB(cfg.Trivia.BaseURL, cfg.Trivia.HTTPTimeout, rnd), rnd, logger)
	drawModule := pictionary.New(bank, rnd)

	hub := websocket.NewHub(logger)
	orch := game.NewOrchestrator(game.Deps{
		Registry:     game.NewRegistry(rnd, clock),
		Catalog:      game.NewCatalog(quizModule, drawModule),
		Clock:        clock,
		Sender:       hub,
		Quiz:         quizModule,
		Pictionary:   drawModule,
		Logger:       logger,
		RevealDelay:  cfg.Game.RevealDelay,
		Intermission: cfg.Game.Intermission,
		FetchTimeout: cfg.Game.FetchTimeout,
		MaxPlayers:   cfg.Game.MaxPlayers,
	})

	srv := server.NewServer(orch, websocket.NewHandler(hub, orch, logger), logger)
	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.RegisterRoutes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", httpServer.Addr),
			zap.Duration("startup", time.Since(start)),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("received signal, shutting down")
	case err := <-errCh:
		logger.Error("server error, shutting down", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	logger.Info("shutdown complete", zap.Int("connections", hub.Len()))
}

// loadWords builds the pictionary word bank from the configured source. A
// postgres source is seeded with the builtin lists when it holds no words.
func loadWords(ctx context.Context, cfg config.Config, logger *zap.Logger) (*words.Bank, error) {
	switch cfg.Words.Source {
	case config.WordSourceCSV:
		return words.LoadCSV(cfg.Words.CSVPath)

	case config.WordSourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Int("port", cfg.Database.Port),
			zap.String("database", cfg.Database.Name),
		)

		repo := postgres.NewWordRepository(pool.DB())
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		bank, err := repo.LoadBank(ctx)
		if err != nil {
			return nil, err
		}
		if bank.Len() > 0 {
			return bank, nil
		}
		n, err := repo.Seed(ctx, words.Builtin())
		if err != nil {
			return nil, fmt.Errorf("seeding words: %w", err)
		}
		logger.Info("seeded builtin words", zap.Int("inserted", n))
		return repo.LoadBank(ctx)

	default:
		return words.Builtin(), nil
	}
}
