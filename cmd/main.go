package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mockuniversity/mocku-backend/internal/app"
	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/utils"
)

func main() {
	mode := utils.GetEnv("MODE", "debug", nil)
	log, err := logger.New(mode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := app.LoadConfig(log)
	a, err := app.New(log, cfg)
	if err != nil {
		log.Fatal("Failed to initialize application", "error", err)
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info("Shutdown signal received")
		a.Close()
	}()

	if err := a.Start(); err != nil {
		log.Fatal("Server exited with error", "error", err)
	}
}
