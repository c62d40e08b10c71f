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

// AuctionRepository - интерфейс для работы с аукционами.
type AuctionRepository interface {
	GetAuctions(ctx context.Context, limit, offset int, statuses []string) ([]models.Auction, error)
	CreateAuction(ctx context.Context, auction models.Auction) (*models.Auction, error)
	GetAuctionByID(ctx context.Context, auctionID string) (*models.Auction, error)
	UpdateAuction(ctx context.Context, auctionID string, updateFields map[string]interface{}) (*models.Auction, error)
	UpdateAuctionStatus(ctx context.Context, auctionID string, from, to models.AuctionStatus) (*models.Auction, error)
	AddHighlight(ctx context.Context, auctionID, highlight string) (*models.Auction, error)
	CountTeams(ctx context.Context, auctionID string) (int, error)
	CountApprovedPlayers(ctx context.Context, auctionID string) (int, error)
}

// PostgresAuctionRepository - реализация AuctionRepository для базы данных.
type PostgresAuctionRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresAuctionRepository создает новый экземпляр PostgresAuctionRepository.
func NewPostgresAuctionRepository(db *pgxpool.Pool) *PostgresAuctionRepository {
	return &PostgresAuctionRepository{DB: db}
}

const auctionColumns = `id, title, auction_date, total_teams, max_bid_amount, status, current_lot_player_id, categories, highlights, logo, banner, rules, created_at`

func scanAuction(row pgx.Row) (*models.Auction, error) {
	var a models.Auction
	var currentLot *string
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Date,
		&a.TotalTeams,
		&a.MaxBidAmount,
		&a.Status,
		&currentLot,
		&a.Categories,
		&a.Highlights,
		&a.Logo,
		&a.Banner,
		&a.Rules,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if currentLot != nil {
		a.CurrentLotPlayerID = *currentLot
	}
	return &a, nil
}

// GetAuctions возвращает список аукционов.
func (r *PostgresAuctionRepository) GetAuctions(ctx context.Context, limit, offset int, statuses []string) ([]models.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auction`
	var filters []string
	var args []interface{}
	argIndex := 1

	if len(statuses) > 0 {
		filters = append(filters, fmt.Sprintf("status = ANY($%d)", argIndex))
		args = append(args, pq.Array(statuses))
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY auction_date, title LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var auctions []models.Auction
	for rows.Next() {
		auction, err := scanAuction(rows)
		if err != nil {
			return nil, err
		}
		auctions = append(auctions, *auction)
	}
	return auctions, rows.Err()
}

// CreateAuction создает новый аукцион.
func (r *PostgresAuctionRepository) CreateAuction(ctx context.Context, auction models.Auction) (*models.Auction, error) {
	auction.ID = uuid.New().String()
	auction.Status = models.UpcomingAuction
	auction.CreatedAt = time.Now().UTC()
	if auction.Highlights == nil {
		auction.Highlights = []string{}
	}

	_, err := r.DB.Exec(ctx, `
       INSERT INTO auction (id, title, auction_date, total_teams, max_bid_amount, status, categories, highlights, logo, banner, rules, created_at)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
   `,
		auction.ID,
		auction.Title,
		auction.Date,
		auction.TotalTeams,
		auction.MaxBidAmount,
		auction.Status,
		auction.Categories,
		auction.Highlights,
		auction.Logo,
		auction.Banner,
		auction.Rules,
		auction.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert auction: %w", err)
	}
	return &auction, nil
}

// GetAuctionByID возвращает аукцион по ID.
func (r *PostgresAuctionRepository) GetAuctionByID(ctx context.Context, auctionID string) (*models.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auction WHERE id = $1`
	auction, err := scanAuction(r.DB.QueryRow(ctx, query, auctionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("auction not found")
	}
	if err != nil {
		return nil, err
	}
	return auction, nil
}

// UpdateAuction изменяет поля аукциона.
func (r *PostgresAuctionRepository) UpdateAuction(ctx context.Context, auctionID string, updateFields map[string]interface{}) (*models.Auction, error) {
	var updates []string
	var args []interface{}
	argIndex := 1

	if title, ok := updateFields["title"].(string); ok && title != "" {
		updates = append(updates, fmt.Sprintf("title = $%d", argIndex))
		args = append(args, title)
		argIndex++
	}

	if logo, ok := updateFields["logo"].(string); ok && logo != "" {
		updates = append(updates, fmt.Sprintf("logo = $%d", argIndex))
		args = append(args, logo)
		argIndex++
	}

	if banner, ok := updateFields["banner"].(string); ok && banner != "" {
		updates = append(updates, fmt.Sprintf("banner = $%d", argIndex))
		args = append(args, banner)
		argIndex++
	}

	if rules, ok := updateFields["rules"].(string); ok && rules != "" {
		updates = append(updates, fmt.Sprintf("rules = $%d", argIndex))
		args = append(args, rules)
		argIndex++
	}

	if date, ok := updateFields["date"].(time.Time); ok {
		updates = append(updates, fmt.Sprintf("auction_date = $%d", argIndex))
		args = append(args, date)
		argIndex++
	}

	if totalTeams, ok := updateFields["totalTeams"].(int); ok {
		updates = append(updates, fmt.Sprintf("total_teams = $%d", argIndex))
		args = append(args, totalTeams)
		argIndex++
	}

	if maxBid, ok := updateFields["maxBidAmount"].(int64); ok {
		updates = append(updates, fmt.Sprintf("max_bid_amount = $%d", argIndex))
		args = append(args, maxBid)
		argIndex++
	}

	if categories, ok := updateFields["categories"].([]models.Category); ok {
		updates = append(updates, fmt.Sprintf("categories = $%d", argIndex))
		args = append(args, categories)
		argIndex++
	}

	if len(updates) == 0 {
		return nil, models.NewValidationError("no valid fields to update")
	}

	query := `UPDATE auction SET ` + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", argIndex) + auctionColumns
	args = append(args, auctionID)

	auction, err := scanAuction(r.DB.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("auction not found")
	}
	if err != nil {
		return nil, err
	}
	return auction, nil
}

// UpdateAuctionStatus переводит аукцион из статуса from в статус to.
// Переход выполняется только если текущий статус совпадает с from.
func (r *PostgresAuctionRepository) UpdateAuctionStatus(ctx context.Context, auctionID string, from, to models.AuctionStatus) (*models.Auction, error) {
	query := `UPDATE auction SET status = $1 WHERE id = $2 AND status = $3 RETURNING ` + auctionColumns
	auction, err := scanAuction(r.DB.QueryRow(ctx, query, to, auctionID, from))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewConflictError(fmt.Sprintf("auction is no longer %s", from))
	}
	if err != nil {
		return nil, err
	}
	return auction, nil
}

// AddHighlight добавляет запись в журнал хайлайтов аукциона.
func (r *PostgresAuctionRepository) AddHighlight(ctx context.Context, auctionID, highlight string) (*models.Auction, error) {
	query := `UPDATE auction SET highlights = array_append(highlights, $1) WHERE id = $2 RETURNING ` + auctionColumns
	auction, err := scanAuction(r.DB.QueryRow(ctx, query, highlight, auctionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("auction not found")
	}
	if err != nil {
		return nil, err
	}
	return auction, nil
}

// CountTeams возвращает количество команд аукциона.
func (r *PostgresAuctionRepository) CountTeams(ctx context.Context, auctionID string) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM team WHERE auction_id = $1`, auctionID).Scan(&count)
	return count, err
}

// CountApprovedPlayers возвращает количество одобренных игроков аукциона.
func (r *PostgresAuctionRepository) CountApprovedPlayers(ctx context.Context, auctionID string) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM player WHERE auction_id = $1 AND approved = TRUE`, auctionID).Scan(&count)
	return count, err
}
