package models

import "time"

// PlayerStatus - статус игрока в рамках аукциона.
type PlayerStatus string

const (
	YetToAuction PlayerStatus = "yet-to-auction" // Игрок еще не выставлялся
	Bidding      PlayerStatus = "bidding"        // Игрок сейчас на торгах
	Sold         PlayerStatus = "sold"           // Игрок продан команде
	Unsold       PlayerStatus = "unsold"         // Лот закрыт без продажи
)

// Player представляет модель игрока.
type Player struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Sport             string       `json:"sport"`
	Category          string       `json:"category,omitempty"`
	Experience        string       `json:"experience,omitempty"`
	Achievements      string       `json:"achievements,omitempty"`
	Contact           string       `json:"contact,omitempty"`
	Email             string       `json:"email,omitempty"`
	Status            PlayerStatus `json:"status"`
	BasePrice         int64        `json:"basePrice"`
	CurrentPrice      *int64       `json:"currentPrice,omitempty"`
	TeamID            string       `json:"team,omitempty"`
	AuctionID         string       `json:"auction,omitempty"`
	Approved          bool         `json:"approved"`
	PaymentScreenshot string       `json:"paymentScreenshot,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
}

// PlayerRequest представляет структуру запроса для саморегистрации игрока.
type PlayerRequest struct {
	Name              string `json:"name"`
	Sport             string `json:"sport"`
	Experience        string `json:"experience"`
	Achievements      string `json:"achievements"`
	Contact           string `json:"contact"`
	Email             string `json:"email"`
	PaymentScreenshot string `json:"paymentScreenshot"`
}
