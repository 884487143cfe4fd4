package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bagdasarian/simpleprefix/internal/handler"
	"github.com/bagdasarian/simpleprefix/internal/handler/server"
	"github.com/bagdasarian/simpleprefix/internal/scheduler"
	"github.com/bagdasarian/simpleprefix/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the config watcher",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := startExecutor(ctx, a.executor); err != nil {
		return err
	}

	w := a.newWatcher()
	if err := w.Start(ctx); err != nil {
		a.logger.Error("config watcher disabled", zap.Error(err))
	}
	defer w.Stop()

	h := handler.NewHandler(handler.Services{
		Registry:     a.registry,
		Resolver:     a.resolver,
		Synchronizer: a.synchronizer,
		Events:       a.events,
		Chat:         a.chat,
		Formats:      a.formats,
		Migration:    a.migration,
		Sessions:     a.sessions,
		Board:        a.board,
	}, a.executor)
	srv := server.NewServer(h, a.cfg.Server.Addr, a.logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		a.logger.Error("server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server forced to shutdown", zap.Error(err))
	}
	w.Stop()

	cleanupBindings(shutdownCtx, a.executor, a.synchronizer, a.logger)
	return nil
}

// startExecutor не привязывает исполнителя к сигналу: после сигнала на нем еще
// выполняется очистка, а останавливает его app.close
func startExecutor(ctx context.Context, executor *scheduler.Executor) error {
	return executor.Start(context.WithoutCancel(ctx))
}

// cleanupBindings убирает команды, чтобы они не пережили рестарт
func cleanupBindings(ctx context.Context, executor *scheduler.Executor, synchronizer service.TeamSynchronizer, logger *zap.Logger) {
	if err := executor.Call(ctx, func() error {
		synchronizer.Cleanup(ctx)
		return nil
	}); err != nil {
		logger.Warn("cleanup skipped", zap.Error(err))
	}
}
