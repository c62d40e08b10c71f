package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/senyabanana/auction-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PlayerRepository - интерфейс для работы с игроками.
type PlayerRepository interface {
	GetPlayers(ctx context.Context, limit, offset int, auctionID string, statuses []string) ([]models.Player, error)
	CreatePlayer(ctx context.Context, playerReq models.PlayerRequest) (*models.Player, error)
	GetPlayerByID(ctx context.Context, playerID string) (*models.Player, error)
	ApprovePlayer(ctx context.Context, playerID, auctionID string) (*models.Player, error)
	SetPlayerCategory(ctx context.Context, playerID, category string, basePrice int64) (*models.Player, error)
}

// PostgresPlayerRepository - реализация PlayerRepository для базы данных.
type PostgresPlayerRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresPlayerRepository создает новый экземпляр PostgresPlayerRepository.
func NewPostgresPlayerRepository(db *pgxpool.Pool) *PostgresPlayerRepository {
	return &PostgresPlayerRepository{DB: db}
}

const playerColumns = `id, name, sport, category, experience, achievements, contact, email, status, base_price, current_price, team_id, auction_id, approved, payment_screenshot, created_at`

func scanPlayer(row pgx.Row) (*models.Player, error) {
	var p models.Player
	var category, teamID, auctionID *string
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Sport,
		&category,
		&p.Experience,
		&p.Achievements,
		&p.Contact,
		&p.Email,
		&p.Status,
		&p.BasePrice,
		&p.CurrentPrice,
		&teamID,
		&auctionID,
		&p.Approved,
		&p.PaymentScreenshot,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if category != nil {
		p.Category = *category
	}
	if teamID != nil {
		p.TeamID = *teamID
	}
	if auctionID != nil {
		p.AuctionID = *auctionID
	}
	return &p, nil
}

// GetPlayers возвращает список игроков.
func (r *PostgresPlayerRepository) GetPlayers(ctx context.Context, limit, offset int, auctionID string, statuses []string) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM player`
	var filters []string
	var args []interface{}
	argIndex := 1

	if auctionID != "" {
		filters = append(filters, fmt.Sprintf("auction_id = $%d", argIndex))
		args = append(args, auctionID)
		argIndex++
	}

	if len(statuses) > 0 {
		filters = append(filters, fmt.Sprintf("status = ANY($%d)", argIndex))
		args = append(args, pq.Array(statuses))
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *player)
	}
	return players, rows.Err()
}

// CreatePlayer создает игрока по заявке саморегистрации.
// Игрок создается неодобренным и без привязки к аукциону.
func (r *PostgresPlayerRepository) CreatePlayer(ctx context.Context, playerReq models.PlayerRequest) (*models.Player, error) {
	newPlayer := models.Player{
		ID:                uuid.New().String(),
		Name:              playerReq.Name,
		Sport:             playerReq.Sport,
		Experience:        playerReq.Experience,
		Achievements:      playerReq.Achievements,
		Contact:           playerReq.Contact,
		Email:             playerReq.Email,
		Status:            models.YetToAuction,
		PaymentScreenshot: playerReq.PaymentScreenshot,
		Approved:          false,
		CreatedAt:         time.Now().UTC(),
	}
	insertQuery := `INSERT INTO player (id, name, sport, experience, achievements, contact, email, status, base_price, approved, payment_screenshot, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newPlayer.ID,
		newPlayer.Name,
		newPlayer.Sport,
		newPlayer.Experience,
		newPlayer.Achievements,
		newPlayer.Contact,
		newPlayer.Email,
		newPlayer.Status,
		newPlayer.BasePrice,
		newPlayer.Approved,
		newPlayer.PaymentScreenshot,
		newPlayer.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert player: %w", err)
	}
	return &newPlayer, nil
}

// GetPlayerByID возвращает игрока по ID.
func (r *PostgresPlayerRepository) GetPlayerByID(ctx context.Context, playerID string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM player WHERE id = $1`
	player, err := scanPlayer(r.DB.QueryRow(ctx, query, playerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("player not found")
	}
	if err != nil {
		return nil, err
	}
	return player, nil
}

// ApprovePlayer одобряет игрока и привязывает его к аукциону.
func (r *PostgresPlayerRepository) ApprovePlayer(ctx context.Context, playerID, auctionID string) (*models.Player, error) {
	query := `UPDATE player SET approved = TRUE, auction_id = $1 WHERE id = $2 RETURNING ` + playerColumns
	player, err := scanPlayer(r.DB.QueryRow(ctx, query, auctionID, playerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("player not found")
	}
	if err != nil {
		return nil, err
	}
	return player, nil
}

// SetPlayerCategory назначает игроку категорию и пересчитанную базовую цену.
func (r *PostgresPlayerRepository) SetPlayerCategory(ctx context.Context, playerID, category string, basePrice int64) (*models.Player, error) {
	query := `UPDATE player SET category = $1, base_price = $2 WHERE id = $3 RETURNING ` + playerColumns
	player, err := scanPlayer(r.DB.QueryRow(ctx, query, category, basePrice, playerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("player not found")
	}
	if err != nil {
		return nil, err
	}
	return player, nil
}
