package services

import (
	"context"
	"fmt"

	"github.com/senyabanana/auction-service/internal/models"
	"github.com/senyabanana/auction-service/internal/repository"
	"github.com/senyabanana/auction-service/internal/utils"
)

// LotService реализует машину состояний лота: открытие торгов, журнал ставок
// и расчет по лоту. Предусловия проверяются здесь, атомарность переходов
// обеспечивает LotRepository.
type LotService struct {
	Repo        repository.LotRepository
	AuctionRepo repository.AuctionRepository
	PlayerRepo  repository.PlayerRepository
	TeamRepo    repository.TeamRepository
	BidRepo     repository.BidRepository
}

// NewLotService создает новый экземпляр LotService.
func NewLotService(
	repo repository.LotRepository,
	auctionRepo repository.AuctionRepository,
	playerRepo repository.PlayerRepository,
	teamRepo repository.TeamRepository,
	bidRepo repository.BidRepository,
) *LotService {
	return &LotService{
		Repo:        repo,
		AuctionRepo: auctionRepo,
		PlayerRepo:  playerRepo,
		TeamRepo:    teamRepo,
		BidRepo:     bidRepo,
	}
}

// OpenLot выставляет игрока на торги.
func (s *LotService) OpenLot(ctx context.Context, auctionID, playerID string) (*models.Auction, error) {
	if auctionID == "" || playerID == "" {
		return nil, models.NewValidationError("missing required parameters: auctionId or playerId")
	}

	auction, err := s.AuctionRepo.GetAuctionByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction.Status != models.LiveAuction {
		return nil, models.NewConflictError("auction is not live")
	}
	if auction.CurrentLotPlayerID != "" {
		return nil, models.NewConflictError("another lot is already open")
	}

	player, err := s.PlayerRepo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.AuctionID != auctionID {
		return nil, models.NewConflictError("player is not part of this auction")
	}
	if !player.Approved {
		return nil, models.NewConflictError("player is not approved")
	}
	if player.Category == "" {
		return nil, models.NewConflictError("player has no category assigned")
	}
	if player.Status != models.YetToAuction {
		return nil, models.NewConflictError(fmt.Sprintf("player cannot be auctioned from status %s", player.Status))
	}
	return s.Repo.OpenLot(ctx, auctionID, playerID)
}

// PlaceBid проверяет и дописывает ставку в журнал.
// Минимальная допустимая сумма - текущая высшая ставка (или базовая цена,
// если ставок нет) плюс шаг категории. Бюджет команды при ставке не
// списывается, чтобы команду можно было перебить.
func (s *LotService) PlaceBid(ctx context.Context, auctionID, playerID string, bidReq models.BidRequest) (*models.Bid, error) {
	if auctionID == "" || playerID == "" || bidReq.TeamID == "" {
		return nil, models.NewValidationError("missing required parameters: auctionId, playerId or teamId")
	}
	if bidReq.Amount <= 0 {
		return nil, models.NewValidationError("bid amount must be positive")
	}

	auction, err := s.AuctionRepo.GetAuctionByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction.Status != models.LiveAuction || auction.CurrentLotPlayerID != playerID {
		return nil, models.NewNoActiveLotError("player is not currently bidding")
	}

	player, err := s.PlayerRepo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.Status != models.Bidding {
		return nil, models.NewNoActiveLotError("player is not currently bidding")
	}

	category := auction.CategoryByName(player.Category)
	if category == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("category %s not found in auction", player.Category))
	}

	team, err := s.TeamRepo.GetTeamByID(ctx, bidReq.TeamID)
	if err != nil {
		return nil, err
	}
	if team.AuctionID != auctionID {
		return nil, models.NewConflictError("team is not part of this auction")
	}
	if bidReq.Amount > team.RemainingBudget {
		return nil, models.NewBudgetExceededError("bid amount exceeds team's remaining budget")
	}

	highest, err := s.BidRepo.GetHighestBid(ctx, auctionID, playerID)
	if err != nil {
		return nil, err
	}
	floor := player.BasePrice
	if highest != nil {
		floor = highest.Amount
	}
	if bidReq.Amount < floor+category.BidIncrement {
		return nil, models.NewInvalidBidError(fmt.Sprintf("bid must be at least %d", floor+category.BidIncrement))
	}
	return s.Repo.PlaceBid(ctx, auctionID, playerID, bidReq.TeamID, bidReq.Amount, player.BasePrice, category.BidIncrement)
}

// Sell закрывает лот продажей команде.
// Продается держателю высшей ставки; без ставок допускается продажа любой
// команде по базовой цене. Победитель, сумма и лимит состава заново
// проверяются репозиторием внутри транзакции продажи.
func (s *LotService) Sell(ctx context.Context, auctionID, playerID, teamID string) (*models.Player, error) {
	if auctionID == "" || playerID == "" || teamID == "" {
		return nil, models.NewValidationError("missing required parameters: auctionId, playerId or teamId")
	}

	auction, err := s.AuctionRepo.GetAuctionByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction.CurrentLotPlayerID != playerID {
		return nil, models.NewConflictError("lot is not open for this player")
	}

	player, err := s.PlayerRepo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.Status != models.Bidding {
		return nil, models.NewConflictError("player is not currently bidding")
	}

	highest, err := s.BidRepo.GetHighestBid(ctx, auctionID, playerID)
	if err != nil {
		return nil, err
	}
	settleAmount := player.BasePrice
	if highest != nil {
		if highest.TeamID != teamID {
			return nil, models.NewConflictError("team does not hold the highest bid")
		}
		settleAmount = highest.Amount
	}

	team, err := s.TeamRepo.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.AuctionID != auctionID {
		return nil, models.NewConflictError("team is not part of this auction")
	}
	if settleAmount > team.RemainingBudget {
		return nil, models.NewBudgetExceededError("settlement exceeds team's remaining budget")
	}

	category := auction.CategoryByName(player.Category)
	maxPerTeam := 0
	if category != nil {
		maxPerTeam = category.MaxPlayersPerTeam
	}
	if maxPerTeam > 0 {
		owned, err := s.TeamRepo.CountSoldPlayersByCategory(ctx, teamID, player.Category)
		if err != nil {
			return nil, err
		}
		if owned >= maxPerTeam {
			return nil, models.NewRosterConstraintError(
				fmt.Sprintf("team already has %d players in category %s", owned, player.Category))
		}
	}
	return s.Repo.SellLot(ctx, auctionID, playerID, teamID, player.BasePrice, player.Category, maxPerTeam)
}

// MarkUnsold закрывает лот без продажи.
func (s *LotService) MarkUnsold(ctx context.Context, auctionID, playerID string) (*models.Player, error) {
	if auctionID == "" || playerID == "" {
		return nil, models.NewValidationError("missing required parameters: auctionId or playerId")
	}

	auction, err := s.AuctionRepo.GetAuctionByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction.CurrentLotPlayerID != playerID {
		return nil, models.NewConflictError("lot is not open for this player")
	}

	player, err := s.PlayerRepo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.Status != models.Bidding {
		return nil, models.NewConflictError("player is not currently bidding")
	}
	return s.Repo.MarkUnsold(ctx, auctionID, playerID)
}

// ResetPlayer - административный сброс игрока в yet-to-auction.
// Продажа при этом отменяется: бюджет возвращается команде, игрок убирается
// из состава.
func (s *LotService) ResetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	if playerID == "" {
		return nil, models.NewValidationError("missing required parameter: playerId")
	}

	player, err := s.PlayerRepo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.Status == models.YetToAuction {
		return nil, models.NewConflictError("player has not been auctioned yet")
	}
	return s.Repo.ResetPlayer(ctx, playerID)
}

// FetchPlayerBids получает журнал ставок игрока.
func (s *LotService) FetchPlayerBids(ctx context.Context, playerID, limitStr, offsetStr string) ([]models.Bid, error) {
	if playerID == "" {
		return nil, models.NewValidationError("missing required parameter: playerId")
	}
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, err := s.PlayerRepo.GetPlayerByID(ctx, playerID); err != nil {
		return nil, err
	}
	return s.BidRepo.GetPlayerBids(ctx, playerID, limit, offset)
}

// GetCurrentHighest возвращает текущую высшую ставку по лоту.
func (s *LotService) GetCurrentHighest(ctx context.Context, auctionID, playerID string) (*models.Bid, error) {
	if auctionID == "" || playerID == "" {
		return nil, models.NewValidationError("missing required parameters: auctionId or playerId")
	}
	highest, err := s.BidRepo.GetHighestBid(ctx, auctionID, playerID)
	if err != nil {
		return nil, err
	}
	if highest == nil {
		return nil, models.NewNotFoundError("no bids for this player yet")
	}
	return highest, nil
}
