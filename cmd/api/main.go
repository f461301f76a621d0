package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"equimanage-server/internal/adapters/auth/gotrue"
	"equimanage-server/internal/adapters/email/resend"
	"equimanage-server/internal/adapters/registry/rimondo"
	pg "equimanage-server/internal/adapters/storage/postgres"
	"equimanage-server/internal/platform/logger"
	"equimanage-server/internal/ports/auth"
	"equimanage-server/internal/ports/email"
	"equimanage-server/internal/ports/registry"
	"equimanage-server/internal/router"
)

// @title EquiManage API
// @version 1.0
// @description Gestión de caballos: conformidad de vacunación, herrador, avisos y citas.
// @BasePath /
func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	// Auth: sin GOTRUE_URL corre en modo dev (X-Debug-User-ID).
	var verifier auth.AuthVerifier
	var directory auth.Directory
	if base := os.Getenv("GOTRUE_URL"); base != "" {
		client, err := gotrue.NewClient(gotrue.Config{
			BaseURL:        base,
			AnonKey:        os.Getenv("GOTRUE_ANON_KEY"),
			ServiceRoleKey: os.Getenv("GOTRUE_SERVICE_ROLE_KEY"),
		})
		if err != nil {
			log.Error("gotrue client init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = client
		directory = client
	} else {
		log.Warn("GOTRUE_URL not set, running in dev auth mode", nil)
	}

	var sender email.Sender
	if mailer := resend.NewClient(resend.Config{
		APIKey: os.Getenv("RESEND_API_KEY"),
		From:   os.Getenv("RESEND_FROM_EMAIL"),
	}); mailer.IsConfigured() {
		sender = mailer
	} else {
		log.Warn("resend not configured, due-check emails will be skipped", nil)
	}

	var fetcher registry.Fetcher = rimondo.NewClient(0)

	var db *sql.DB
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		opened, err := pg.Open(dsn)
		if err != nil {
			log.Error("db open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		db = opened

		migrationsDir := os.Getenv("MIGRATIONS_DIR")
		if migrationsDir == "" {
			migrationsDir = "migrations"
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := pg.RunMigrations(ctx, db, migrationsDir); err != nil {
			cancel()
			log.Error("migrations failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		cancel()
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Directory:    directory,
		Sender:       sender,
		Fetcher:      fetcher,
		CronSecret:   os.Getenv("CRON_SECRET"),
		DB:           db,
		Log:          log,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
