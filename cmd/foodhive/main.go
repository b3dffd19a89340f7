// Package main запускает клиентскую оболочку FoodHive.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/foodhive/client-shell/internal/api"
	"github.com/foodhive/client-shell/internal/config"
	"github.com/foodhive/client-shell/internal/handler"
	"github.com/foodhive/client-shell/internal/service"
	"github.com/foodhive/client-shell/internal/storage"
	"github.com/foodhive/client-shell/internal/store"
	syncer "github.com/foodhive/client-shell/internal/sync"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	// .env удобен при локальной разработке; его отсутствие не ошибка.
	_ = godotenv.Load()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}
	if cfg.APIAddress == "" {
		sugar.Fatalw("configuration error", "error", "FoodHive API address is required")
	}

	state, err := storage.Open(cfg.StatePath)
	if err != nil {
		sugar.Fatalw("state database initialization error", "error", err.Error())
	}
	defer state.Close()

	paniers := store.NewPanierStore(state, logger)
	favoris := store.NewFavorisStore(state, logger)
	commandes := store.NewCommandeStore(state, logger)
	tables := store.NewTableStore(state, logger)
	sessions := store.NewSessionStore(state, store.NewCascade(paniers, favoris, commandes), logger)

	paniers.Load()
	favoris.Load()
	commandes.Load()
	tables.Load()
	sessions.InitializeAuth()

	var reconciler *syncer.Reconciler

	apiClient := api.NewClient(cfg.APIAddress, func() string {
		return sessions.Session().Token
	}, func() {
		// 401: каскадная очистка плюс инвалидация незавершённых
		// проходов синхронизации прежней идентичности.
		sessions.Logout()
		if reconciler != nil {
			reconciler.Invalidate()
		}
	})

	reconciler = syncer.New(sessions, tables, paniers, favoris, apiClient,
		cfg.GuestOwnerID, cfg.GuestTableCart, logger)

	svc := service.NewService(sessions, paniers, tables, favoris, commandes,
		apiClient, reconciler, cfg.GuestOwnerID, cfg.GuestTableCart, logger)

	h := handler.NewHandler(svc, logger)
	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Первый проход синхронизации выполняется в фоне: оболочка должна
	// подняться и без доступного сервера.
	g.Go(func() error {
		syncCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		if err := reconciler.Sync(syncCtx); err != nil {
			if errors.Is(err, syncer.ErrRoleMismatch) {
				sugar.Warnw("persisted session rejected", "reason", err.Error())
				return nil
			}
			return err
		}
		return nil
	})

	g.Go(func() error {
		sugar.Infow("starting foodhive client shell", "addr", cfg.RunAddress, "api", cfg.APIAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
