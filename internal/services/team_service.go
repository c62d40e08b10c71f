package services

import (
	"context"

	"github.com/senyabanana/auction-service/internal/models"
	"github.com/senyabanana/auction-service/internal/repository"
	"github.com/senyabanana/auction-service/internal/utils"
)

type TeamService struct {
	Repo        repository.TeamRepository
	AuctionRepo repository.AuctionRepository
}

// NewTeamService создает новый экземпляр TeamService.
func NewTeamService(repo repository.TeamRepository, auctionRepo repository.AuctionRepository) *TeamService {
	return &TeamService{Repo: repo, AuctionRepo: auctionRepo}
}

// FetchTeams получает список команд.
func (s *TeamService) FetchTeams(ctx context.Context, limitStr, offsetStr, auctionID string) ([]models.Team, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.Repo.GetTeams(ctx, limit, offset, auctionID)
}

// CreateTeam создает команду аукциона.
// Бюджет команды равен maxBidAmount аукциона; количество команд ограничено
// totalTeams - проверка повторяется внутри транзакции вставки.
func (s *TeamService) CreateTeam(ctx context.Context, teamReq models.TeamRequest) (*models.Team, error) {
	if teamReq.Name == "" || teamReq.Sport == "" || teamReq.Captain == "" ||
		teamReq.ViceCaptain == "" || teamReq.AuctionID == "" {
		return nil, models.NewValidationError("missing required fields: name, sport, captain, viceCaptain, auctionId")
	}

	auction, err := s.AuctionRepo.GetAuctionByID(ctx, teamReq.AuctionID)
	if err != nil {
		return nil, err
	}
	if auction.Status == models.CompletedAuction {
		return nil, models.NewConflictError("cannot create teams for a completed auction")
	}

	teamCount, err := s.AuctionRepo.CountTeams(ctx, teamReq.AuctionID)
	if err != nil {
		return nil, err
	}
	if teamCount >= auction.TotalTeams {
		return nil, models.NewConflictError("maximum number of teams reached for this auction")
	}
	return s.Repo.CreateTeam(ctx, teamReq, auction.MaxBidAmount)
}

// GetTeam получает команду по ID вместе с составом.
func (s *TeamService) GetTeam(ctx context.Context, teamID string) (*models.Team, error) {
	if teamID == "" {
		return nil, models.NewValidationError("missing required parameter: teamId")
	}
	return s.Repo.GetTeamByID(ctx, teamID)
}
