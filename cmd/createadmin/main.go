package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/senyabanana/auction-service/internal/db"
	"github.com/senyabanana/auction-service/internal/repository"
	"github.com/senyabanana/auction-service/internal/router/config"

	"github.com/lmittmann/tint"
	"golang.org/x/crypto/bcrypt"
)

// Утилита создает или обновляет учетную запись администратора.
func main() {
	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Error("cannot load config", slog.Any("err", err))
		os.Exit(1)
	}

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		logger.Error("ADMIN_USERNAME and ADMIN_PASSWORD must be set")
		os.Exit(1)
	}

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		logger.Error("error initializing database", slog.Any("err", err))
		os.Exit(1)
	}
	defer dbPool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	adminRepo := repository.NewPostgresAdminRepository(dbPool)
	admin, err := adminRepo.UpsertAdmin(ctx, cfg.AdminUsername, string(hash))
	if err != nil {
		logger.Error("failed to upsert admin", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("admin account ready", slog.String("username", admin.Username))
}
