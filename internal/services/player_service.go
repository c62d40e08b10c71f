package services

import (
	"context"
	"fmt"

	"github.com/senyabanana/auction-service/internal/models"
	"github.com/senyabanana/auction-service/internal/repository"
	"github.com/senyabanana/auction-service/internal/utils"
)

type PlayerService struct {
	Repo        repository.PlayerRepository
	AuctionRepo repository.AuctionRepository
}

// NewPlayerService создает новый экземпляр PlayerService.
func NewPlayerService(repo repository.PlayerRepository, auctionRepo repository.AuctionRepository) *PlayerService {
	return &PlayerService{Repo: repo, AuctionRepo: auctionRepo}
}

// FetchPlayers получает список игроков.
func (s *PlayerService) FetchPlayers(ctx context.Context, limitStr, offsetStr, auctionID string, statuses []string) ([]models.Player, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	allowedStatuses := map[models.PlayerStatus]bool{
		models.YetToAuction: true,
		models.Bidding:      true,
		models.Sold:         true,
		models.Unsold:       true,
	}
	for _, status := range statuses {
		if !allowedStatuses[models.PlayerStatus(status)] {
			return nil, models.NewValidationError(fmt.Sprintf("unsupported player status: %s", status))
		}
	}
	return s.Repo.GetPlayers(ctx, limit, offset, auctionID, statuses)
}

// RegisterPlayer создает неодобренного игрока по заявке саморегистрации.
func (s *PlayerService) RegisterPlayer(ctx context.Context, playerReq models.PlayerRequest) (*models.Player, error) {
	if playerReq.Name == "" || playerReq.Sport == "" || playerReq.Contact == "" {
		return nil, models.NewValidationError("missing required fields: name, sport, contact")
	}
	return s.Repo.CreatePlayer(ctx, playerReq)
}

// GetPlayer получает игрока по ID.
func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	if playerID == "" {
		return nil, models.NewValidationError("missing required parameter: playerId")
	}
	return s.Repo.GetPlayerByID(ctx, playerID)
}

// ApprovePlayer одобряет заявку игрока и привязывает его к аукциону.
func (s *PlayerService) ApprovePlayer(ctx context.Context, playerID, auctionID string) (*models.Player, error) {
	if playerID == "" || auctionID == "" {
		return nil, models.NewValidationError("missing required parameters: playerId or auctionId")
	}

	player, err := s.Repo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.Approved {
		return nil, models.NewConflictError("player is already approved")
	}

	auction, err := s.AuctionRepo.GetAuctionByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction.Status == models.CompletedAuction {
		return nil, models.NewConflictError("cannot approve players for a completed auction")
	}
	return s.Repo.ApprovePlayer(ctx, playerID, auctionID)
}

// SetPlayerCategory назначает игроку категорию его аукциона.
// Базовая цена пересчитывается из minAmount категории.
func (s *PlayerService) SetPlayerCategory(ctx context.Context, playerID, categoryName, auctionID string) (*models.Player, error) {
	if playerID == "" || categoryName == "" || auctionID == "" {
		return nil, models.NewValidationError("missing required parameters: playerId, category or auctionId")
	}

	player, err := s.Repo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.AuctionID != "" && player.AuctionID != auctionID {
		return nil, models.NewConflictError("player belongs to another auction")
	}
	if player.Status != models.YetToAuction {
		return nil, models.NewConflictError(fmt.Sprintf("cannot change category while player is %s", player.Status))
	}

	auction, err := s.AuctionRepo.GetAuctionByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	category := auction.CategoryByName(categoryName)
	if category == nil {
		return nil, models.NewValidationError(fmt.Sprintf("invalid category for this auction: %s", categoryName))
	}
	return s.Repo.SetPlayerCategory(ctx, playerID, categoryName, category.MinAmount)
}
