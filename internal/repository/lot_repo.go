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

// LotRepository - интерфейс атомарных операций над лотом.
// Каждая операция выполняется одной сериализуемой транзакцией: строки
// блокируются в порядке auction -> player -> team, все предусловия
// перепроверяются на момент коммита. Предварительные проверки сервисного
// слоя дают понятные ошибки, транзакция защищает от гонок.
type LotRepository interface {
	OpenLot(ctx context.Context, auctionID, playerID string) (*models.Auction, error)
	PlaceBid(ctx context.Context, auctionID, playerID, teamID string, amount, basePrice, increment int64) (*models.Bid, error)
	SellLot(ctx context.Context, auctionID, playerID, teamID string, basePrice int64, category string, maxPerTeam int) (*models.Player, error)
	MarkUnsold(ctx context.Context, auctionID, playerID string) (*models.Player, error)
	ResetPlayer(ctx context.Context, playerID string) (*models.Player, error)
}

// PostgresLotRepository - реализация LotRepository для базы данных.
type PostgresLotRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresLotRepository создает новый экземпляр PostgresLotRepository.
func NewPostgresLotRepository(db *pgxpool.Pool) *PostgresLotRepository {
	return &PostgresLotRepository{DB: db}
}

func (r *PostgresLotRepository) beginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// OpenLot выставляет игрока на торги.
func (r *PostgresLotRepository) OpenLot(ctx context.Context, auctionID, playerID string) (*models.Auction, error) {
	tx, err := r.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var status models.AuctionStatus
	var currentLot *string
	err = tx.QueryRow(ctx, `SELECT status, current_lot_player_id FROM auction WHERE id = $1 FOR UPDATE`, auctionID).
		Scan(&status, &currentLot)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("auction not found")
	}
	if err != nil {
		return nil, err
	}
	if status != models.LiveAuction {
		return nil, models.NewConflictError("auction is not live")
	}
	if currentLot != nil {
		return nil, models.NewConflictError("another lot is already open")
	}

	result, err := tx.Exec(ctx,
		`UPDATE player SET status = $1 WHERE id = $2 AND auction_id = $3 AND approved = TRUE AND status = $4`,
		models.Bidding, playerID, auctionID, models.YetToAuction)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, models.NewConflictError("player is not available for bidding")
	}

	auction, err := scanAuction(tx.QueryRow(ctx,
		`UPDATE auction SET current_lot_player_id = $1 WHERE id = $2 RETURNING `+auctionColumns,
		playerID, auctionID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return auction, nil
}

// PlaceBid дописывает ставку в журнал.
// Блокировка строки игрока сериализует все ставки по одному лоту, поэтому
// проверка "сумма не ниже высшей ставки плюс шаг" и вставка атомарны.
func (r *PostgresLotRepository) PlaceBid(ctx context.Context, auctionID, playerID, teamID string, amount, basePrice, increment int64) (*models.Bid, error) {
	tx, err := r.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var playerStatus models.PlayerStatus
	err = tx.QueryRow(ctx, `SELECT status FROM player WHERE id = $1 AND auction_id = $2 FOR UPDATE`, playerID, auctionID).
		Scan(&playerStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("player not found in this auction")
	}
	if err != nil {
		return nil, err
	}
	if playerStatus != models.Bidding {
		return nil, models.NewNoActiveLotError("player is not currently bidding")
	}

	var remainingBudget int64
	err = tx.QueryRow(ctx, `SELECT remaining_budget FROM team WHERE id = $1 AND auction_id = $2 FOR UPDATE`, teamID, auctionID).
		Scan(&remainingBudget)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("team not found in this auction")
	}
	if err != nil {
		return nil, err
	}
	if amount > remainingBudget {
		return nil, models.NewBudgetExceededError("bid amount exceeds team's remaining budget")
	}

	floor := basePrice
	var highest int64
	err = tx.QueryRow(ctx,
		`SELECT amount FROM bid WHERE auction_id = $1 AND player_id = $2 ORDER BY amount DESC, seq ASC LIMIT 1`,
		auctionID, playerID).Scan(&highest)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err == nil {
		floor = highest
	}
	if amount < floor+increment {
		return nil, models.NewInvalidBidError(fmt.Sprintf("bid must be at least %d", floor+increment))
	}

	newBid := models.Bid{
		ID:        uuid.New().String(),
		AuctionID: auctionID,
		PlayerID:  playerID,
		TeamID:    teamID,
		Amount:    amount,
		PlacedAt:  time.Now().UTC(),
	}
	err = tx.QueryRow(ctx, `
       INSERT INTO bid (id, auction_id, player_id, team_id, amount, placed_at)
       VALUES ($1, $2, $3, $4, $5, $6) RETURNING seq
   `,
		newBid.ID,
		newBid.AuctionID,
		newBid.PlayerID,
		newBid.TeamID,
		newBid.Amount,
		newBid.PlacedAt).Scan(&newBid.Seq)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bid: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &newBid, nil
}

// SellLot закрывает лот продажей: игрок уходит команде, бюджет списывается,
// указатель текущего лота очищается. Победитель и сумма расчета заново
// выводятся из журнала внутри транзакции: ставка, закоммиченная после
// проверок сервисного слоя, превращает продажу в конфликт, а не в потерю.
func (r *PostgresLotRepository) SellLot(ctx context.Context, auctionID, playerID, teamID string, basePrice int64, category string, maxPerTeam int) (*models.Player, error) {
	tx, err := r.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE auction SET current_lot_player_id = NULL WHERE id = $1 AND status = $2 AND current_lot_player_id = $3`,
		auctionID, models.LiveAuction, playerID)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, models.NewConflictError("lot is no longer open for this player")
	}

	settleAmount := basePrice
	var highestAmount int64
	var highestTeam string
	err = tx.QueryRow(ctx,
		`SELECT amount, team_id FROM bid WHERE auction_id = $1 AND player_id = $2 ORDER BY amount DESC, seq ASC LIMIT 1`,
		auctionID, playerID).Scan(&highestAmount, &highestTeam)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err == nil {
		if highestTeam != teamID {
			return nil, models.NewConflictError("team does not hold the highest bid")
		}
		settleAmount = highestAmount
	}

	if maxPerTeam > 0 {
		var owned int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM player WHERE team_id = $1 AND category = $2 AND status = $3`,
			teamID, category, models.Sold).Scan(&owned)
		if err != nil {
			return nil, err
		}
		if owned >= maxPerTeam {
			return nil, models.NewRosterConstraintError(
				fmt.Sprintf("team already has %d players in category %s", owned, category))
		}
	}

	player, err := scanPlayer(tx.QueryRow(ctx,
		`UPDATE player SET status = $1, current_price = $2, team_id = $3 WHERE id = $4 AND status = $5 RETURNING `+playerColumns,
		models.Sold, settleAmount, teamID, playerID, models.Bidding))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewConflictError("player is no longer bidding")
	}
	if err != nil {
		return nil, err
	}

	result, err = tx.Exec(ctx,
		`UPDATE team SET remaining_budget = remaining_budget - $1 WHERE id = $2 AND remaining_budget >= $1`,
		settleAmount, teamID)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, models.NewBudgetExceededError("settlement exceeds team's remaining budget")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return player, nil
}

// MarkUnsold закрывает лот без продажи.
func (r *PostgresLotRepository) MarkUnsold(ctx context.Context, auctionID, playerID string) (*models.Player, error) {
	tx, err := r.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE auction SET current_lot_player_id = NULL WHERE id = $1 AND current_lot_player_id = $2`,
		auctionID, playerID)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, models.NewConflictError("lot is no longer open for this player")
	}

	player, err := scanPlayer(tx.QueryRow(ctx,
		`UPDATE player SET status = $1 WHERE id = $2 AND status = $3 RETURNING `+playerColumns,
		models.Unsold, playerID, models.Bidding))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewConflictError("player is no longer bidding")
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return player, nil
}

// ResetPlayer - административный сброс игрока в yet-to-auction.
// Для проданного игрока возвращает команде списанный бюджет и убирает его
// из состава; ставки игрока вычищаются, чтобы устаревший журнал не задавал
// минимальный порог повторных торгов.
func (r *PostgresLotRepository) ResetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	tx, err := r.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	current, err := scanPlayer(tx.QueryRow(ctx, `SELECT `+playerColumns+` FROM player WHERE id = $1 FOR UPDATE`, playerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("player not found")
	}
	if err != nil {
		return nil, err
	}
	if current.Status == models.YetToAuction {
		return nil, models.NewConflictError("player has not been auctioned yet")
	}

	if current.Status == models.Sold && current.TeamID != "" && current.CurrentPrice != nil {
		_, err = tx.Exec(ctx,
			`UPDATE team SET remaining_budget = remaining_budget + $1 WHERE id = $2`,
			*current.CurrentPrice, current.TeamID)
		if err != nil {
			return nil, err
		}
	}

	if current.AuctionID != "" {
		_, err = tx.Exec(ctx,
			`UPDATE auction SET current_lot_player_id = NULL WHERE id = $1 AND current_lot_player_id = $2`,
			current.AuctionID, playerID)
		if err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM bid WHERE player_id = $1`, playerID); err != nil {
		return nil, err
	}

	player, err := scanPlayer(tx.QueryRow(ctx,
		`UPDATE player SET status = $1, current_price = NULL, team_id = NULL WHERE id = $2 RETURNING `+playerColumns,
		models.YetToAuction, playerID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return player, nil
}
