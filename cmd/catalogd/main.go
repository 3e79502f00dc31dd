package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"catalogd/internal/config"
	"catalogd/internal/http/handlers"
	applog "catalogd/internal/log"
	"catalogd/internal/offers"
	"catalogd/internal/repos"
	"catalogd/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Partner identity, before anything else talks to the partner.
	partner := offers.NewClient(cfg.OffersBaseURL)
	credRepo := repos.NewCredentialRepo(db)
	token, err := offers.EnsureCredential(context.Background(), credRepo, partner, cfg.OffersBaseURL)
	if err != nil {
		log.Fatalf("credential bootstrap: %v", err)
	}
	partner.UseToken(token)

	// Background sync loop; CRUD serving does not wait on it.
	syncSvc := services.NewSyncService(repos.NewProductRepo(db), repos.NewOfferRepo(db), partner)
	syncCtx, stopSync := context.WithCancel(context.Background())
	defer stopSync()
	go syncSvc.Run(syncCtx, cfg.SyncInterval)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	deps := handlers.NewDeps(db, partner)
	handlers.Register(app, deps)

	log.Fatal(app.Listen(":" + cfg.Port))
}
