package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"ngo-finance-backend/internal/adapter/repository/mysql"
	"ngo-finance-backend/internal/app"
	"ngo-finance-backend/internal/config"
	"ngo-finance-backend/internal/infrastructure/cache"
	"ngo-finance-backend/internal/infrastructure/db"
	"ngo-finance-backend/internal/infrastructure/logging"
)

func main() {
	cfg := config.Load(".env")
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("open mysql")
	}
	if err := mysql.AutoMigrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("open redis")
	}
	defer rdb.Close()

	a := app.New(gdb, rdb, app.Options{
		IdempotencyTTL:    cfg.IdempotencyTTL(),
		SummaryTTL:        cfg.SummaryTTL(),
		RecheckOnApproval: cfg.RecheckOnApproval,
		NotifyChannel:     cfg.NotifyChannel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
