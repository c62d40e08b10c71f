package services

import (
	"context"
	"fmt"
	"time"

	"github.com/senyabanana/auction-service/internal/models"
	"github.com/senyabanana/auction-service/internal/repository"
	"github.com/senyabanana/auction-service/internal/utils"
)

type AuctionService struct {
	Repo repository.AuctionRepository
	now  func() time.Time
}

// NewAuctionService создает новый экземпляр AuctionService.
func NewAuctionService(repo repository.AuctionRepository) *AuctionService {
	return &AuctionService{Repo: repo, now: time.Now}
}

func validateCategories(categories []models.Category) error {
	if len(categories) == 0 {
		return models.NewValidationError("auction must have at least one category")
	}
	seen := make(map[string]bool)
	for _, category := range categories {
		if category.Name == "" {
			return models.NewValidationError("category name is required")
		}
		if seen[category.Name] {
			return models.NewValidationError(fmt.Sprintf("duplicate category name: %s", category.Name))
		}
		seen[category.Name] = true
		if category.MinAmount < 0 || category.MinAmount > category.MaxAmount {
			return models.NewValidationError(fmt.Sprintf("category %s: minAmount must be within [0, maxAmount]", category.Name))
		}
		if category.BidIncrement <= 0 {
			return models.NewValidationError(fmt.Sprintf("category %s: bidIncrement must be positive", category.Name))
		}
		if category.MinPlayersPerTeam < 0 || (category.MaxPlayersPerTeam > 0 && category.MinPlayersPerTeam > category.MaxPlayersPerTeam) {
			return models.NewValidationError(fmt.Sprintf("category %s: invalid players-per-team bounds", category.Name))
		}
	}
	return nil
}

// FetchAuctions получает список аукционов.
func (s *AuctionService) FetchAuctions(ctx context.Context, limitStr, offsetStr string, statuses []string) ([]models.Auction, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	allowedStatuses := map[models.AuctionStatus]bool{
		models.UpcomingAuction:  true,
		models.LiveAuction:      true,
		models.CompletedAuction: true,
	}
	for _, status := range statuses {
		if !allowedStatuses[models.AuctionStatus(status)] {
			return nil, models.NewValidationError(fmt.Sprintf("unsupported auction status: %s", status))
		}
	}
	return s.Repo.GetAuctions(ctx, limit, offset, statuses)
}

// CreateAuction создает новый аукцион.
func (s *AuctionService) CreateAuction(ctx context.Context, auctionReq models.AuctionRequest) (*models.Auction, error) {
	if auctionReq.Title == "" || auctionReq.Date == "" || auctionReq.TotalTeams == 0 ||
		auctionReq.MaxBidAmount == 0 || len(auctionReq.Categories) == 0 {
		return nil, models.NewValidationError("missing required fields: title, date, totalTeams, maxBidAmount, categories")
	}
	if auctionReq.TotalTeams < 1 {
		return nil, models.NewValidationError("totalTeams must be at least 1")
	}
	if auctionReq.MaxBidAmount <= 0 {
		return nil, models.NewValidationError("maxBidAmount must be positive")
	}
	if err := validateCategories(auctionReq.Categories); err != nil {
		return nil, err
	}

	date, err := utils.ParseAuctionDate(auctionReq.Date)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	auction := models.Auction{
		Title:        auctionReq.Title,
		Date:         date,
		TotalTeams:   auctionReq.TotalTeams,
		MaxBidAmount: auctionReq.MaxBidAmount,
		Categories:   auctionReq.Categories,
		Logo:         auctionReq.Logo,
		Banner:       auctionReq.Banner,
		Rules:        auctionReq.Rules,
	}
	return s.Repo.CreateAuction(ctx, auction)
}

// GetAuction получает аукцион по ID.
func (s *AuctionService) GetAuction(ctx context.Context, auctionID string) (*models.Auction, error) {
	if auctionID == "" {
		return nil, models.NewValidationError("missing required parameter: auctionId")
	}
	return s.Repo.GetAuctionByID(ctx, auctionID)
}

// EditAuction изменяет аукцион, пока не прошла его дата.
func (s *AuctionService) EditAuction(ctx context.Context, auctionID string, updateFields map[string]interface{}) (*models.Auction, error) {
	if auctionID == "" {
		return nil, models.NewValidationError("missing required parameter: auctionId")
	}

	currentAuction, err := s.Repo.GetAuctionByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if utils.AuctionDatePassed(currentAuction.Date, s.now()) {
		return nil, models.NewImmutableStateError("cannot update auction after its date")
	}

	parsed := make(map[string]interface{})
	for _, field := range []string{"title", "logo", "banner", "rules"} {
		if value, ok := updateFields[field].(string); ok && value != "" {
			parsed[field] = value
		}
	}

	if dateStr, ok := updateFields["date"].(string); ok && dateStr != "" {
		date, err := utils.ParseAuctionDate(dateStr)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		parsed["date"] = date
	}

	if totalTeams, ok := updateFields["totalTeams"].(float64); ok {
		if totalTeams < 1 {
			return nil, models.NewValidationError("totalTeams must be at least 1")
		}
		existingTeams, err := s.Repo.CountTeams(ctx, auctionID)
		if err != nil {
			return nil, err
		}
		if int(totalTeams) < existingTeams {
			return nil, models.NewConflictError(
				fmt.Sprintf("totalTeams cannot be lower than the %d teams already created", existingTeams))
		}
		parsed["totalTeams"] = int(totalTeams)
	}

	if maxBid, ok := updateFields["maxBidAmount"].(float64); ok {
		if maxBid <= 0 {
			return nil, models.NewValidationError("maxBidAmount must be positive")
		}
		parsed["maxBidAmount"] = int64(maxBid)
	}

	if rawCategories, ok := updateFields["categories"]; ok {
		categories, err := decodeCategories(rawCategories)
		if err != nil {
			return nil, err
		}
		if err := validateCategories(categories); err != nil {
			return nil, err
		}
		parsed["categories"] = categories
	}

	if len(parsed) == 0 {
		return nil, models.NewValidationError("no valid fields to update")
	}
	return s.Repo.UpdateAuction(ctx, auctionID, parsed)
}

// UpdateAuctionStatus переводит аукцион между статусами жизненного цикла.
func (s *AuctionService) UpdateAuctionStatus(ctx context.Context, auctionID, status string) (*models.Auction, error) {
	if auctionID == "" || status == "" {
		return nil, models.NewValidationError("missing required parameters: auctionId or status")
	}

	currentAuction, err := s.Repo.GetAuctionByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	allowedStatusTransition := map[models.AuctionStatus][]models.AuctionStatus{
		models.UpcomingAuction:  {models.LiveAuction},
		models.LiveAuction:      {models.CompletedAuction},
		models.CompletedAuction: {},
	}

	newStatus := models.AuctionStatus(status)
	validTransition := allowedStatusTransition[currentAuction.Status]
	if !utils.ContainsAuctionStatus(validTransition, newStatus) {
		return nil, models.NewConflictError(fmt.Sprintf("cannot transition auction from %s to %s", currentAuction.Status, status))
	}

	switch newStatus {
	case models.LiveAuction:
		if len(currentAuction.Categories) == 0 {
			return nil, models.NewConflictError("auction has no categories")
		}
		approvedPlayers, err := s.Repo.CountApprovedPlayers(ctx, auctionID)
		if err != nil {
			return nil, err
		}
		if approvedPlayers == 0 {
			return nil, models.NewConflictError("auction has no approved players")
		}
	case models.CompletedAuction:
		if currentAuction.CurrentLotPlayerID != "" {
			return nil, models.NewConflictError("cannot complete auction while a lot is open")
		}
	}
	return s.Repo.UpdateAuctionStatus(ctx, auctionID, currentAuction.Status, newStatus)
}

// AddHighlight добавляет хайлайт в журнал аукциона.
func (s *AuctionService) AddHighlight(ctx context.Context, auctionID, highlight string) (*models.Auction, error) {
	if auctionID == "" || highlight == "" {
		return nil, models.NewValidationError("missing required parameters: auctionId or highlight")
	}
	return s.Repo.AddHighlight(ctx, auctionID, highlight)
}

// decodeCategories приводит категории из JSON-патча к моделям.
func decodeCategories(raw interface{}) ([]models.Category, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, models.NewValidationError("categories must be an array")
	}
	categories := make([]models.Category, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]interface{})
		if !ok {
			return nil, models.NewValidationError("invalid category object")
		}
		var category models.Category
		category.ID, _ = fields["id"].(string)
		category.Name, _ = fields["name"].(string)
		category.Description, _ = fields["description"].(string)
		category.Color, _ = fields["color"].(string)
		if v, ok := fields["minAmount"].(float64); ok {
			category.MinAmount = int64(v)
		}
		if v, ok := fields["maxAmount"].(float64); ok {
			category.MaxAmount = int64(v)
		}
		if v, ok := fields["bidIncrement"].(float64); ok {
			category.BidIncrement = int64(v)
		}
		if v, ok := fields["minPlayersPerTeam"].(float64); ok {
			category.MinPlayersPerTeam = int(v)
		}
		if v, ok := fields["maxPlayersPerTeam"].(float64); ok {
			category.MaxPlayersPerTeam = int(v)
		}
		categories = append(categories, category)
	}
	return categories, nil
}
