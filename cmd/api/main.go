package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Thaworapong/credit-note/internal/application/creditnote"
	"github.com/Thaworapong/credit-note/internal/infrastructure/excel"
	"github.com/Thaworapong/credit-note/internal/infrastructure/jsonstore"
	infrapdf "github.com/Thaworapong/credit-note/internal/infrastructure/pdf"
	httpRouter "github.com/Thaworapong/credit-note/internal/interfaces/http"
	"github.com/Thaworapong/credit-note/pkg/config"
	"github.com/Thaworapong/credit-note/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	// Working directories the tool has always created on first run.
	for _, dir := range []string{
		filepath.Dir(cfg.Paths.LogPath),
		filepath.Dir(cfg.Paths.TemplatePath),
		cfg.Paths.OutputDir,
		cfg.Paths.FontDir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("create working directory")
		}
	}

	store := jsonstore.NewSequenceLogStore(cfg.Paths.LogPath)
	// A corrupt log fails startup instead of silently discarding the issued
	// history; the operator must repair or move the file aside.
	if _, err := store.Load(); err != nil {
		log.Fatal().Err(err).Str("path", cfg.Paths.LogPath).Msg("load sequence log")
	}

	exporter := excel.NewTemplateExporter(cfg.Paths.TemplatePath)
	exportUC := creditnote.NewExportUseCase(store, exporter, cfg.Paths.TemplatePath, cfg.Paths.OutputDir, log)
	pdfUC := creditnote.NewPDFUseCase(store, infrapdf.NewMarotoRenderer(cfg.Paths.FontDir))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ExportUC: exportUC,
		PDFUC:    pdfUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
