package models

import "time"

// Team представляет модель команды.
// Состав (Players) выводится из player.team_id и заполняется при чтении.
type Team struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Sport           string    `json:"sport"`
	Captain         string    `json:"captain"`
	ViceCaptain     string    `json:"viceCaptain"`
	Budget          int64     `json:"budget"`
	RemainingBudget int64     `json:"remainingBudget"`
	Players         []string  `json:"players"`
	AuctionID       string    `json:"auction"`
	CreatedAt       time.Time `json:"createdAt"`
}

// TeamRequest представляет структуру запроса для создания команды.
type TeamRequest struct {
	Name        string `json:"name"`
	Sport       string `json:"sport"`
	Captain     string `json:"captain"`
	ViceCaptain string `json:"viceCaptain"`
	AuctionID   string `json:"auctionId"`
}
