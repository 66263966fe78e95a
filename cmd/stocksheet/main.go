package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopbill/internal/config"
	"shopbill/internal/server"
	"shopbill/internal/sheet"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	store, err := sheet.NewStore(cfg.SheetPath)
	if err != nil {
		logrus.Fatalf("open stock sheet: %v", err)
	}

	mux := http.NewServeMux()
	sheet.NewHandler(store).Register(mux)

	logrus.Infof("starting stocksheet env=%s port=%s file=%s", cfg.Env, cfg.Port, cfg.SheetPath)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: server.Recover(server.Logging(mux))}

	go func() {
		logrus.Infof("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("error during shutdown: %v", err)
	}
	logrus.Info("server gracefully stopped")
}
