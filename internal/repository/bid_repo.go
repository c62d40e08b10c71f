package repository

import (
	"context"
	"errors"

	"github.com/senyabanana/auction-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BidRepository - интерфейс для чтения журнала ставок.
// Запись в журнал выполняет только LotRepository внутри транзакции лота.
type BidRepository interface {
	GetPlayerBids(ctx context.Context, playerID string, limit, offset int) ([]models.Bid, error)
	GetHighestBid(ctx context.Context, auctionID, playerID string) (*models.Bid, error)
}

// PostgresBidRepository - реализация BidRepository для базы данных.
type PostgresBidRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresBidRepository создает новый экземпляр PostgresBidRepository.
func NewPostgresBidRepository(db *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{DB: db}
}

const bidColumns = `seq, id, auction_id, player_id, team_id, amount, placed_at`

func scanBid(row pgx.Row) (*models.Bid, error) {
	var b models.Bid
	err := row.Scan(
		&b.Seq,
		&b.ID,
		&b.AuctionID,
		&b.PlayerID,
		&b.TeamID,
		&b.Amount,
		&b.PlacedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetPlayerBids возвращает ставки по игроку, от самой высокой к самой низкой.
func (r *PostgresBidRepository) GetPlayerBids(ctx context.Context, playerID string, limit, offset int) ([]models.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bid WHERE player_id = $1 ORDER BY amount DESC, seq ASC LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, playerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []models.Bid
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		bids = append(bids, *bid)
	}
	return bids, rows.Err()
}

// GetHighestBid возвращает текущую высшую ставку по лоту.
// При равных суммах побеждает более ранняя ставка (меньший seq).
// Возвращает nil без ошибки, если ставок еще нет.
func (r *PostgresBidRepository) GetHighestBid(ctx context.Context, auctionID, playerID string) (*models.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bid WHERE auction_id = $1 AND player_id = $2 ORDER BY amount DESC, seq ASC LIMIT 1`
	bid, err := scanBid(r.DB.QueryRow(ctx, query, auctionID, playerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return bid, nil
}
