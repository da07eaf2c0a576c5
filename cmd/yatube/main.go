package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yatube-dev/yatube/internal/config"
	"github.com/yatube-dev/yatube/internal/logger"
	"github.com/yatube-dev/yatube/internal/router"
	"github.com/yatube-dev/yatube/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to setup dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Close()

	srv := &http.Server{
		Addr:         cfg.Public.Addr,
		Handler:      router.New(deps),
		ReadTimeout:  cfg.Public.ReadTimeout,
		WriteTimeout: cfg.Public.WriteTimeout,
	}

	go func() {
		logger.Log.Info("server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Log.Info("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("forced shutdown", "error", err)
	}
}
