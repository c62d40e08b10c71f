package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/senyabanana/auction-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminRepository - интерфейс для работы с учетными записями организаторов.
type AdminRepository interface {
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	UpsertAdmin(ctx context.Context, username, passwordHash string) (*models.Admin, error)
}

// PostgresAdminRepository - реализация AdminRepository для базы данных.
type PostgresAdminRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresAdminRepository создает новый экземпляр PostgresAdminRepository.
func NewPostgresAdminRepository(db *pgxpool.Pool) *PostgresAdminRepository {
	return &PostgresAdminRepository{DB: db}
}

// GetAdminByUsername возвращает учетную запись по имени пользователя.
func (r *PostgresAdminRepository) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.DB.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM admin WHERE username = $1`, username).
		Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("admin not found")
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// UpsertAdmin создает учетную запись или обновляет хэш пароля существующей.
func (r *PostgresAdminRepository) UpsertAdmin(ctx context.Context, username, passwordHash string) (*models.Admin, error) {
	admin := models.Admin{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	err := r.DB.QueryRow(ctx, `
       INSERT INTO admin (id, username, password_hash, created_at)
       VALUES ($1, $2, $3, $4)
       ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
       RETURNING id, created_at
   `,
		admin.ID, admin.Username, admin.PasswordHash, admin.CreatedAt).Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert admin: %w", err)
	}
	return &admin, nil
}
