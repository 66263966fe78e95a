package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopbill/internal/config"
	"shopbill/internal/db"
	"shopbill/internal/server"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	dbConn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		logrus.Fatalf("db connect: %v", err)
	}
	if *migrateOnlyFlag {
		logrus.Info("migrations completed; exiting as requested")
		return
	}

	logrus.Infof("starting server env=%s port=%s", cfg.Env, cfg.Port)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: server.New(dbConn)}

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
