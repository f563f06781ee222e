package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saulo-duarte/quizgen-lambda/internal/config"
	"github.com/saulo-duarte/quizgen-lambda/internal/container"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Logger().WithError(err).Fatal("Invalid configuration")
	}
	config.InitLogger(cfg.LogLevel, cfg.LogFormat)
	log := config.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to build container")
	}
	defer c.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// generation may take two model calls
		WriteTimeout: 2*cfg.AICallTimeout + 30*time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}
