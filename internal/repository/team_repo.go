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

// TeamRepository - интерфейс для работы с командами.
type TeamRepository interface {
	GetTeams(ctx context.Context, limit, offset int, auctionID string) ([]models.Team, error)
	CreateTeam(ctx context.Context, teamReq models.TeamRequest, budget int64) (*models.Team, error)
	GetTeamByID(ctx context.Context, teamID string) (*models.Team, error)
	CountSoldPlayersByCategory(ctx context.Context, teamID, category string) (int, error)
}

// PostgresTeamRepository - реализация TeamRepository для базы данных.
type PostgresTeamRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresTeamRepository создает новый экземпляр PostgresTeamRepository.
func NewPostgresTeamRepository(db *pgxpool.Pool) *PostgresTeamRepository {
	return &PostgresTeamRepository{DB: db}
}

const teamColumns = `id, name, sport, captain, vice_captain, budget, remaining_budget, auction_id, created_at`

func scanTeam(row pgx.Row) (*models.Team, error) {
	var t models.Team
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Sport,
		&t.Captain,
		&t.ViceCaptain,
		&t.Budget,
		&t.RemainingBudget,
		&t.AuctionID,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// loadRoster заполняет состав команды идентификаторами проданных ей игроков.
func (r *PostgresTeamRepository) loadRoster(ctx context.Context, team *models.Team) error {
	rows, err := r.DB.Query(ctx, `SELECT id FROM player WHERE team_id = $1 ORDER BY name`, team.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	team.Players = []string{}
	for rows.Next() {
		var playerID string
		if err := rows.Scan(&playerID); err != nil {
			return err
		}
		team.Players = append(team.Players, playerID)
	}
	return rows.Err()
}

// GetTeams возвращает список команд.
func (r *PostgresTeamRepository) GetTeams(ctx context.Context, limit, offset int, auctionID string) ([]models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM team`
	var args []interface{}
	if auctionID != "" {
		query += ` WHERE auction_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
		args = append(args, auctionID, limit, offset)
	} else {
		query += ` ORDER BY name LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range teams {
		if err := r.loadRoster(ctx, &teams[i]); err != nil {
			return nil, err
		}
	}
	return teams, nil
}

// CreateTeam создает команду аукциона.
// Лимит Auction.totalTeams проверяется повторно внутри транзакции, чтобы
// две одновременные заявки не заняли одно оставшееся место.
func (r *PostgresTeamRepository) CreateTeam(ctx context.Context, teamReq models.TeamRequest, budget int64) (*models.Team, error) {
	newTeam := models.Team{
		ID:              uuid.New().String(),
		Name:            teamReq.Name,
		Sport:           teamReq.Sport,
		Captain:         teamReq.Captain,
		ViceCaptain:     teamReq.ViceCaptain,
		Budget:          budget,
		RemainingBudget: budget,
		Players:         []string{},
		AuctionID:       teamReq.AuctionID,
		CreatedAt:       time.Now().UTC(),
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var totalTeams int
	err = tx.QueryRow(ctx, `SELECT total_teams FROM auction WHERE id = $1 FOR UPDATE`, teamReq.AuctionID).Scan(&totalTeams)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("auction not found")
	}
	if err != nil {
		return nil, err
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM team WHERE auction_id = $1`, teamReq.AuctionID).Scan(&count); err != nil {
		return nil, err
	}
	if count >= totalTeams {
		return nil, models.NewConflictError("maximum number of teams reached for this auction")
	}

	_, err = tx.Exec(ctx, `
       INSERT INTO team (id, name, sport, captain, vice_captain, budget, remaining_budget, auction_id, created_at)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
   `,
		newTeam.ID,
		newTeam.Name,
		newTeam.Sport,
		newTeam.Captain,
		newTeam.ViceCaptain,
		newTeam.Budget,
		newTeam.RemainingBudget,
		newTeam.AuctionID,
		newTeam.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert team: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &newTeam, nil
}

// GetTeamByID возвращает команду по ID вместе с составом.
func (r *PostgresTeamRepository) GetTeamByID(ctx context.Context, teamID string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM team WHERE id = $1`
	team, err := scanTeam(r.DB.QueryRow(ctx, query, teamID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("team not found")
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadRoster(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// CountSoldPlayersByCategory возвращает число проданных команде игроков категории.
func (r *PostgresTeamRepository) CountSoldPlayersByCategory(ctx context.Context, teamID, category string) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM player WHERE team_id = $1 AND category = $2 AND status = $3`,
		teamID, category, models.Sold).Scan(&count)
	return count, err
}
