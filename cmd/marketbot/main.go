// Package main запускает маркетплейс-бота и его служебный HTTP-сервер.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/marketplace-bot/internal/command"
	"github.com/mmeshcher/marketplace-bot/internal/config"
	"github.com/mmeshcher/marketplace-bot/internal/discord"
	"github.com/mmeshcher/marketplace-bot/internal/handler"
	"github.com/mmeshcher/marketplace-bot/internal/metrics"
	"github.com/mmeshcher/marketplace-bot/internal/model"
	"github.com/mmeshcher/marketplace-bot/internal/repository"
	"github.com/mmeshcher/marketplace-bot/internal/service"
	"github.com/mmeshcher/marketplace-bot/internal/store"
)

const (
	productsCollection = "products"
	vouchesCollection  = "vouches"
)

type backend interface {
	store.Backend
	Close() error
}

func openBackend(ctx context.Context, cfg *config.Config) (backend, error) {
	if cfg.DatabaseURI != "" {
		repo, err := repository.NewPostgresRepository(ctx, cfg.DatabaseURI, cfg.DatabaseTimeout)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}

	repo, err := repository.NewFileRepository(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		sugar.Fatalw("load .env error", "error", err.Error())
	}

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := openBackend(ctx, cfg)
	if err != nil {
		sugar.Fatalw("storage initialization error", "error", err.Error())
	}
	defer repo.Close()

	products, err := store.Open[model.Product](ctx, repo, productsCollection)
	if err != nil {
		sugar.Fatalw("open products collection error", "error", err.Error())
	}
	vouches, err := store.Open[model.Vouch](ctx, repo, vouchesCollection)
	if err != nil {
		sugar.Fatalw("open vouches collection error", "error", err.Error())
	}

	m := metrics.NewRegistry()

	bot, err := discord.New(cfg.Token, cfg.GuildID, logger)
	if err != nil {
		sugar.Fatalw("discord initialization error", "error", err.Error())
	}

	svc := service.NewService(products, vouches, bot.Messenger(), cfg.VouchChannelID, service.WithMetrics(m))
	dispatcher := command.NewDispatcher(svc, logger, m)

	h := handler.NewHandler(svc, logger, m.Handler())
	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: h.SetupRouter(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infow("starting discord bot", "guild", cfg.GuildID, "vouchChannel", cfg.VouchChannelID)
		return bot.Run(ctx, dispatcher)
	})

	g.Go(func() error {
		sugar.Infow("starting ops server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
