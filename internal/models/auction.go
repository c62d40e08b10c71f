package models

import "time"

// AuctionStatus - статус аукциона.
type AuctionStatus string

const (
	UpcomingAuction  AuctionStatus = "upcoming"  // Аукцион создан, торги еще не начались
	LiveAuction      AuctionStatus = "live"      // Торги идут
	CompletedAuction AuctionStatus = "completed" // Аукцион завершен
)

// Category представляет категорию игроков внутри аукциона.
// Категории целиком принадлежат аукциону и хранятся вложенными.
type Category struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	Color             string `json:"color,omitempty"`
	MinAmount         int64  `json:"minAmount"`
	MaxAmount         int64  `json:"maxAmount"`
	BidIncrement      int64  `json:"bidIncrement"`
	MinPlayersPerTeam int    `json:"minPlayersPerTeam"`
	MaxPlayersPerTeam int    `json:"maxPlayersPerTeam"`
}

// Auction представляет модель аукциона.
type Auction struct {
	ID                 string        `json:"id"`
	Title              string        `json:"title"`
	Date               time.Time     `json:"date"`
	TotalTeams         int           `json:"totalTeams"`
	MaxBidAmount       int64         `json:"maxBidAmount"`
	Status             AuctionStatus `json:"status"`
	CurrentLotPlayerID string        `json:"currentLotPlayerId,omitempty"`
	Categories         []Category    `json:"categories"`
	Highlights         []string      `json:"highlights"`
	Logo               string        `json:"logo,omitempty"`
	Banner             string        `json:"banner,omitempty"`
	Rules              string        `json:"rules,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
}

// AuctionRequest представляет структуру запроса для создания аукциона.
type AuctionRequest struct {
	Title        string     `json:"title"`
	Date         string     `json:"date"`
	TotalTeams   int        `json:"totalTeams"`
	MaxBidAmount int64      `json:"maxBidAmount"`
	Categories   []Category `json:"categories"`
	Logo         string     `json:"logo"`
	Banner       string     `json:"banner"`
	Rules        string     `json:"rules"`
}

// CategoryByName возвращает вложенную категорию аукциона по имени.
func (a *Auction) CategoryByName(name string) *Category {
	for i := range a.Categories {
		if a.Categories[i].Name == name {
			return &a.Categories[i]
		}
	}
	return nil
}
