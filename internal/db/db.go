package db

import (
	"context"
	"fmt"

	"github.com/senyabanana/auction-service/internal/router/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitDb инициализирует пул соединений с базой данных.
// Приоритет у готовой строки POSTGRES_CONN; иначе она собирается
// из отдельных POSTGRES_* параметров.
func InitDb(cfg config.Config) (*pgxpool.Pool, error) {
	databaseURL := cfg.PostgresConn
	if databaseURL == "" {
		if cfg.PostgresUser == "" || cfg.PostgresPass == "" || cfg.PostgresHost == "" ||
			cfg.PostgresPort == "" || cfg.PostgresDB == "" {
			return nil, fmt.Errorf("database connection settings are incomplete")
		}
		databaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.PostgresUser, cfg.PostgresPass, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
	}

	dbPool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	return dbPool, nil
}
