package main

import (
	"context"
	"log"

	"notebooklm-client/internal/config"
	"notebooklm-client/internal/mockserver"
	"notebooklm-client/internal/pkg/logger"
	"notebooklm-client/internal/tracer"
)

func main() {
	shutdownTracer := tracer.InitTracer("notebooklm-mock-server")
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	zapLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer zapLogger.Sync()

	srv := mockserver.New(cfg, zapLogger)

	log.Printf("Mock backend listening on http://localhost:%s", cfg.Mock.Port)
	log.Fatal(srv.Run())
}
