package services

import (
	"context"
	"sort"
	"time"

	"github.com/senyabanana/auction-service/internal/models"

	"github.com/google/uuid"
)

// fakeStore - общее in-memory хранилище для тестов сервисов.
// Реализует все интерфейсы репозиториев и повторяет охранные проверки,
// которые Postgres-реализации выполняют внутри транзакций.
type fakeStore struct {
	auctions map[string]*models.Auction
	players  map[string]*models.Player
	teams    map[string]*models.Team
	bids     []models.Bid
	nextSeq  int64
	clock    time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		auctions: make(map[string]*models.Auction),
		players:  make(map[string]*models.Player),
		teams:    make(map[string]*models.Team),
		clock:    time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeStore) seedAuction(a models.Auction) *models.Auction {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Status == "" {
		a.Status = models.UpcomingAuction
	}
	a.CreatedAt = f.tick()
	f.auctions[a.ID] = &a
	return &a
}

func (f *fakeStore) seedPlayer(p models.Player) *models.Player {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = models.YetToAuction
	}
	p.CreatedAt = f.tick()
	f.players[p.ID] = &p
	return &p
}

func (f *fakeStore) seedTeam(t models.Team) *models.Team {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.RemainingBudget == 0 {
		t.RemainingBudget = t.Budget
	}
	t.CreatedAt = f.tick()
	f.teams[t.ID] = &t
	return &t
}

// --- AuctionRepository ---

func (f *fakeStore) GetAuctions(_ context.Context, limit, offset int, statuses []string) ([]models.Auction, error) {
	wanted := make(map[models.AuctionStatus]bool)
	for _, s := range statuses {
		wanted[models.AuctionStatus(s)] = true
	}

	result := make([]models.Auction, 0, len(f.auctions))
	for _, a := range f.auctions {
		if len(wanted) > 0 && !wanted[a.Status] {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })

	if offset >= len(result) {
		return []models.Auction{}, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeStore) CreateAuction(_ context.Context, auction models.Auction) (*models.Auction, error) {
	auction.ID = uuid.New().String()
	auction.Status = models.UpcomingAuction
	auction.Highlights = []string{}
	auction.CreatedAt = f.tick()
	f.auctions[auction.ID] = &auction
	copied := auction
	return &copied, nil
}

func (f *fakeStore) GetAuctionByID(_ context.Context, auctionID string) (*models.Auction, error) {
	a, ok := f.auctions[auctionID]
	if !ok {
		return nil, models.NewNotFoundError("auction not found")
	}
	copied := *a
	return &copied, nil
}

func (f *fakeStore) UpdateAuction(_ context.Context, auctionID string, updateFields map[string]interface{}) (*models.Auction, error) {
	a, ok := f.auctions[auctionID]
	if !ok {
		return nil, models.NewNotFoundError("auction not found")
	}
	if v, ok := updateFields["title"].(string); ok {
		a.Title = v
	}
	if v, ok := updateFields["logo"].(string); ok {
		a.Logo = v
	}
	if v, ok := updateFields["banner"].(string); ok {
		a.Banner = v
	}
	if v, ok := updateFields["rules"].(string); ok {
		a.Rules = v
	}
	if v, ok := updateFields["date"].(time.Time); ok {
		a.Date = v
	}
	if v, ok := updateFields["totalTeams"].(int); ok {
		a.TotalTeams = v
	}
	if v, ok := updateFields["maxBidAmount"].(int64); ok {
		a.MaxBidAmount = v
	}
	if v, ok := updateFields["categories"].([]models.Category); ok {
		a.Categories = v
	}
	copied := *a
	return &copied, nil
}

func (f *fakeStore) UpdateAuctionStatus(_ context.Context, auctionID string, from, to models.AuctionStatus) (*models.Auction, error) {
	a, ok := f.auctions[auctionID]
	if !ok {
		return nil, models.NewNotFoundError("auction not found")
	}
	if a.Status != from {
		return nil, models.NewConflictError("auction status changed concurrently")
	}
	a.Status = to
	copied := *a
	return &copied, nil
}

func (f *fakeStore) AddHighlight(_ context.Context, auctionID, highlight string) (*models.Auction, error) {
	a, ok := f.auctions[auctionID]
	if !ok {
		return nil, models.NewNotFoundError("auction not found")
	}
	a.Highlights = append(a.Highlights, highlight)
	copied := *a
	return &copied, nil
}

func (f *fakeStore) CountTeams(_ context.Context, auctionID string) (int, error) {
	count := 0
	for _, t := range f.teams {
		if t.AuctionID == auctionID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CountApprovedPlayers(_ context.Context, auctionID string) (int, error) {
	count := 0
	for _, p := range f.players {
		if p.AuctionID == auctionID && p.Approved {
			count++
		}
	}
	return count, nil
}

// --- PlayerRepository ---

func (f *fakeStore) GetPlayers(_ context.Context, limit, offset int, auctionID string, statuses []string) ([]models.Player, error) {
	wanted := make(map[models.PlayerStatus]bool)
	for _, s := range statuses {
		wanted[models.PlayerStatus(s)] = true
	}

	result := make([]models.Player, 0, len(f.players))
	for _, p := range f.players {
		if auctionID != "" && p.AuctionID != auctionID {
			continue
		}
		if len(wanted) > 0 && !wanted[p.Status] {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })

	if offset >= len(result) {
		return []models.Player{}, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeStore) CreatePlayer(_ context.Context, playerReq models.PlayerRequest) (*models.Player, error) {
	player := models.Player{
		ID:                uuid.New().String(),
		Name:              playerReq.Name,
		Sport:             playerReq.Sport,
		Experience:        playerReq.Experience,
		Achievements:      playerReq.Achievements,
		Contact:           playerReq.Contact,
		Email:             playerReq.Email,
		Status:            models.YetToAuction,
		PaymentScreenshot: playerReq.PaymentScreenshot,
		CreatedAt:         f.tick(),
	}
	f.players[player.ID] = &player
	copied := player
	return &copied, nil
}

func (f *fakeStore) GetPlayerByID(_ context.Context, playerID string) (*models.Player, error) {
	p, ok := f.players[playerID]
	if !ok {
		return nil, models.NewNotFoundError("player not found")
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) ApprovePlayer(_ context.Context, playerID, auctionID string) (*models.Player, error) {
	p, ok := f.players[playerID]
	if !ok {
		return nil, models.NewNotFoundError("player not found")
	}
	p.Approved = true
	p.AuctionID = auctionID
	copied := *p
	return &copied, nil
}

func (f *fakeStore) SetPlayerCategory(_ context.Context, playerID, category string, basePrice int64) (*models.Player, error) {
	p, ok := f.players[playerID]
	if !ok {
		return nil, models.NewNotFoundError("player not found")
	}
	p.Category = category
	p.BasePrice = basePrice
	copied := *p
	return &copied, nil
}

// --- TeamRepository ---

func (f *fakeStore) GetTeams(_ context.Context, limit, offset int, auctionID string) ([]models.Team, error) {
	result := make([]models.Team, 0, len(f.teams))
	for _, t := range f.teams {
		if auctionID != "" && t.AuctionID != auctionID {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })

	if offset >= len(result) {
		return []models.Team{}, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeStore) CreateTeam(ctx context.Context, teamReq models.TeamRequest, budget int64) (*models.Team, error) {
	auction, ok := f.auctions[teamReq.AuctionID]
	if !ok {
		return nil, models.NewNotFoundError("auction not found")
	}
	count, _ := f.CountTeams(ctx, teamReq.AuctionID)
	if count >= auction.TotalTeams {
		return nil, models.NewConflictError("maximum number of teams reached for this auction")
	}

	team := models.Team{
		ID:              uuid.New().String(),
		Name:            teamReq.Name,
		Sport:           teamReq.Sport,
		Captain:         teamReq.Captain,
		ViceCaptain:     teamReq.ViceCaptain,
		Budget:          budget,
		RemainingBudget: budget,
		Players:         []string{},
		AuctionID:       teamReq.AuctionID,
		CreatedAt:       f.tick(),
	}
	f.teams[team.ID] = &team
	copied := team
	return &copied, nil
}

func (f *fakeStore) GetTeamByID(_ context.Context, teamID string) (*models.Team, error) {
	t, ok := f.teams[teamID]
	if !ok {
		return nil, models.NewNotFoundError("team not found")
	}
	copied := *t
	copied.Players = []string{}
	for _, p := range f.players {
		if p.TeamID == teamID {
			copied.Players = append(copied.Players, p.ID)
		}
	}
	sort.Strings(copied.Players)
	return &copied, nil
}

func (f *fakeStore) CountSoldPlayersByCategory(_ context.Context, teamID, category string) (int, error) {
	count := 0
	for _, p := range f.players {
		if p.TeamID == teamID && p.Category == category && p.Status == models.Sold {
			count++
		}
	}
	return count, nil
}

// --- BidRepository ---

func (f *fakeStore) sortedBids(playerID string) []models.Bid {
	result := make([]models.Bid, 0)
	for _, b := range f.bids {
		if b.PlayerID == playerID {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Amount != result[j].Amount {
			return result[i].Amount > result[j].Amount
		}
		return result[i].Seq < result[j].Seq
	})
	return result
}

func (f *fakeStore) GetPlayerBids(_ context.Context, playerID string, limit, offset int) ([]models.Bid, error) {
	result := f.sortedBids(playerID)
	if offset >= len(result) {
		return []models.Bid{}, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeStore) GetHighestBid(_ context.Context, _ string, playerID string) (*models.Bid, error) {
	result := f.sortedBids(playerID)
	if len(result) == 0 {
		return nil, nil
	}
	copied := result[0]
	return &copied, nil
}

// --- LotRepository ---

func (f *fakeStore) OpenLot(_ context.Context, auctionID, playerID string) (*models.Auction, error) {
	a, ok := f.auctions[auctionID]
	if !ok {
		return nil, models.NewNotFoundError("auction not found")
	}
	if a.Status != models.LiveAuction {
		return nil, models.NewConflictError("auction is not live")
	}
	if a.CurrentLotPlayerID != "" {
		return nil, models.NewConflictError("another lot is already open")
	}
	p, ok := f.players[playerID]
	if !ok {
		return nil, models.NewNotFoundError("player not found")
	}
	if !p.Approved || p.Status != models.YetToAuction {
		return nil, models.NewConflictError("player cannot be auctioned")
	}
	p.Status = models.Bidding
	a.CurrentLotPlayerID = playerID
	copied := *a
	return &copied, nil
}

func (f *fakeStore) PlaceBid(ctx context.Context, auctionID, playerID, teamID string, amount, basePrice, increment int64) (*models.Bid, error) {
	p, ok := f.players[playerID]
	if !ok {
		return nil, models.NewNotFoundError("player not found")
	}
	if p.Status != models.Bidding {
		return nil, models.NewNoActiveLotError("player is not currently bidding")
	}
	t, ok := f.teams[teamID]
	if !ok {
		return nil, models.NewNotFoundError("team not found")
	}
	if amount > t.RemainingBudget {
		return nil, models.NewBudgetExceededError("bid amount exceeds team's remaining budget")
	}

	floor := basePrice
	if highest, _ := f.GetHighestBid(ctx, auctionID, playerID); highest != nil {
		floor = highest.Amount
	}
	if amount < floor+increment {
		return nil, models.NewInvalidBidError("bid below minimum")
	}

	f.nextSeq++
	bid := models.Bid{
		Seq:       f.nextSeq,
		ID:        uuid.New().String(),
		AuctionID: auctionID,
		PlayerID:  playerID,
		TeamID:    teamID,
		Amount:    amount,
		PlacedAt:  f.tick(),
	}
	f.bids = append(f.bids, bid)
	copied := bid
	return &copied, nil
}

func (f *fakeStore) SellLot(ctx context.Context, auctionID, playerID, teamID string, basePrice int64, category string, maxPerTeam int) (*models.Player, error) {
	a, ok := f.auctions[auctionID]
	if !ok {
		return nil, models.NewNotFoundError("auction not found")
	}
	if a.CurrentLotPlayerID != playerID {
		return nil, models.NewConflictError("lot is not open for this player")
	}
	p, ok := f.players[playerID]
	if !ok {
		return nil, models.NewNotFoundError("player not found")
	}
	if p.Status != models.Bidding {
		return nil, models.NewConflictError("player is not currently bidding")
	}
	t, ok := f.teams[teamID]
	if !ok {
		return nil, models.NewNotFoundError("team not found")
	}

	settleAmount := basePrice
	if bids := f.sortedBids(playerID); len(bids) > 0 {
		if bids[0].TeamID != teamID {
			return nil, models.NewConflictError("team does not hold the highest bid")
		}
		settleAmount = bids[0].Amount
	}
	if maxPerTeam > 0 {
		owned, _ := f.CountSoldPlayersByCategory(ctx, teamID, category)
		if owned >= maxPerTeam {
			return nil, models.NewRosterConstraintError("team roster is full for this category")
		}
	}
	if settleAmount > t.RemainingBudget {
		return nil, models.NewBudgetExceededError("settlement exceeds team's remaining budget")
	}

	a.CurrentLotPlayerID = ""
	t.RemainingBudget -= settleAmount
	p.Status = models.Sold
	p.TeamID = teamID
	price := settleAmount
	p.CurrentPrice = &price
	copied := *p
	return &copied, nil
}

func (f *fakeStore) MarkUnsold(_ context.Context, auctionID, playerID string) (*models.Player, error) {
	a, ok := f.auctions[auctionID]
	if !ok {
		return nil, models.NewNotFoundError("auction not found")
	}
	if a.CurrentLotPlayerID != playerID {
		return nil, models.NewConflictError("lot is not open for this player")
	}
	p, ok := f.players[playerID]
	if !ok {
		return nil, models.NewNotFoundError("player not found")
	}
	if p.Status != models.Bidding {
		return nil, models.NewConflictError("player is not currently bidding")
	}

	a.CurrentLotPlayerID = ""
	p.Status = models.Unsold
	copied := *p
	return &copied, nil
}

func (f *fakeStore) ResetPlayer(_ context.Context, playerID string) (*models.Player, error) {
	p, ok := f.players[playerID]
	if !ok {
		return nil, models.NewNotFoundError("player not found")
	}
	if p.Status == models.YetToAuction {
		return nil, models.NewConflictError("player has not been auctioned yet")
	}

	if p.Status == models.Sold && p.TeamID != "" && p.CurrentPrice != nil {
		if t, ok := f.teams[p.TeamID]; ok {
			t.RemainingBudget += *p.CurrentPrice
		}
	}
	if a, ok := f.auctions[p.AuctionID]; ok && a.CurrentLotPlayerID == playerID {
		a.CurrentLotPlayerID = ""
	}

	remaining := f.bids[:0]
	for _, b := range f.bids {
		if b.PlayerID != playerID {
			remaining = append(remaining, b)
		}
	}
	f.bids = remaining

	p.Status = models.YetToAuction
	p.TeamID = ""
	p.CurrentPrice = nil
	copied := *p
	return &copied, nil
}
