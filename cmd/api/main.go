package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pet-care-api/internal/adapters/auth/jwtauth"
	"pet-care-api/internal/adapters/storage/postgres"
	"pet-care-api/internal/config"
	"pet-care-api/internal/platform/logger"
	"pet-care-api/internal/router"
)

func main() {
	// El .env es opcional; en contenedores las vars vienen del entorno.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		logger.NewFromEnv().WithError(err).Fatal("invalid configuration")
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		App:    cfg.AppName,
	})

	tokens, err := jwtauth.New(cfg.JWTSecret)
	if err != nil {
		log.WithError(err).Fatal("could not initialize token signer")
	}

	var stores *router.Stores
	if cfg.DBDSN != "" {
		db, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			log.WithError(err).Fatal("could not connect to postgres")
		}
		defer db.Close()

		if err := postgres.Migrate(db); err != nil {
			log.WithError(err).Fatal("could not run migrations")
		}
		stores = router.PostgresStores(db)
		log.Info("storage: postgres")
	} else {
		stores = router.MemoryStores()
		log.Warn("DB_DSN not set, storage: in-memory (data is lost on restart)")
	}

	h := router.New(router.Options{
		Stores:     stores,
		Issuer:     tokens,
		Verifier:   tokens,
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cfg.BcryptCost,
		Log:        log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.WithError(err).Error("forced shutdown")
		}
	}
}
