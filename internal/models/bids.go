package models

import "time"

// Bid представляет запись в журнале ставок.
// Журнал только дополняется: ставки не изменяются и не удаляются в обычном потоке.
type Bid struct {
	Seq       int64     `json:"-"` // Порядок вставки, разрешает ничьи при равных timestamp
	ID        string    `json:"id"`
	AuctionID string    `json:"auctionId"`
	PlayerID  string    `json:"playerId"`
	TeamID    string    `json:"teamId"`
	Amount    int64     `json:"amount"`
	PlacedAt  time.Time `json:"timestamp"`
}

// BidRequest представляет структуру запроса для новой ставки.
type BidRequest struct {
	TeamID string `json:"teamId"`
	Amount int64  `json:"amount"`
}
