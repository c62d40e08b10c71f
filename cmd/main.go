package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/senyabanana/auction-service/internal/db"
	"github.com/senyabanana/auction-service/internal/handlers"
	"github.com/senyabanana/auction-service/internal/middleware"
	"github.com/senyabanana/auction-service/internal/repository"
	"github.com/senyabanana/auction-service/internal/router"
	"github.com/senyabanana/auction-service/internal/router/config"
	"github.com/senyabanana/auction-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/lmittmann/tint"
)

func main() {
	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Error("cannot load config", slog.Any("err", err))
		os.Exit(1)
	}

	runDBMigration(logger, cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		logger.Error("error initializing database", slog.Any("err", err))
		os.Exit(1)
	}
	defer dbPool.Close()

	auctionRepo := repository.NewPostgresAuctionRepository(dbPool)
	playerRepo := repository.NewPostgresPlayerRepository(dbPool)
	teamRepo := repository.NewPostgresTeamRepository(dbPool)
	bidRepo := repository.NewPostgresBidRepository(dbPool)
	lotRepo := repository.NewPostgresLotRepository(dbPool)
	adminRepo := repository.NewPostgresAdminRepository(dbPool)

	auctionService := services.NewAuctionService(auctionRepo)
	playerService := services.NewPlayerService(playerRepo, auctionRepo)
	teamService := services.NewTeamService(teamRepo, auctionRepo)
	lotService := services.NewLotService(lotRepo, auctionRepo, playerRepo, teamRepo, bidRepo)
	authService := services.NewAuthService(adminRepo, cfg.JWTSecret)

	auctionHandler := handlers.NewAuctionHandler(auctionService, logger, 5*time.Second)
	playerHandler := handlers.NewPlayerHandler(playerService, logger, 5*time.Second)
	teamHandler := handlers.NewTeamHandler(teamService, logger, 5*time.Second)
	lotHandler := handlers.NewLotHandler(lotService, logger, 5*time.Second)
	authHandler := handlers.NewAuthHandler(authService, logger, 5*time.Second)

	auth := middleware.NewAdminAuth(cfg.JWTSecret)

	routes := router.InitRoutes(auctionHandler, playerHandler, teamHandler, lotHandler, authHandler, auth)

	logger.Info("server is listening", slog.String("address", cfg.ServerAddress))
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		logger.Error("server failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func runDBMigration(logger *slog.Logger, migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		logger.Error("cannot create a new migrate instance", slog.Any("err", err))
		os.Exit(1)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Error("failed to run migrate up", slog.Any("err", err))
		os.Exit(1)
	}
	logger.Info("db migrated successfully")
}
