package router

import (
	"net/http"

	"github.com/senyabanana/auction-service/internal/handlers"
	"github.com/senyabanana/auction-service/internal/middleware"

	"github.com/rs/cors"
)

func InitRoutes(
	auctionHandler *handlers.AuctionHandler,
	playerHandler *handlers.PlayerHandler,
	teamHandler *handlers.TeamHandler,
	lotHandler *handlers.LotHandler,
	authHandler *handlers.AuthHandler,
	auth *middleware.AdminAuth,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", handlers.PingHandler)
	mux.HandleFunc("/api/auth/login", authHandler.Login)

	mux.HandleFunc("/api/auctions", auctionHandler.GetAuctions)
	mux.HandleFunc("/api/auctions/new", auth.Require(auctionHandler.CreateAuction))
	mux.HandleFunc("GET /api/auctions/{auctionId}", auctionHandler.GetAuction)
	mux.HandleFunc("/api/auctions/{auctionId}/edit", auth.Require(auctionHandler.EditAuction))
	mux.HandleFunc("PUT /api/auctions/{auctionId}/status", auth.Require(auctionHandler.UpdateAuctionStatus))
	mux.HandleFunc("/api/auctions/{auctionId}/highlight", auth.Require(auctionHandler.AddHighlight))

	mux.HandleFunc("/api/players", playerHandler.GetPlayers)
	mux.HandleFunc("/api/players/register", playerHandler.RegisterPlayer)
	mux.HandleFunc("GET /api/players/{playerId}", playerHandler.GetPlayer)
	mux.HandleFunc("PUT /api/players/{playerId}/approve", auth.Require(playerHandler.ApprovePlayer))
	mux.HandleFunc("PUT /api/players/{playerId}/category", auth.Require(playerHandler.SetPlayerCategory))
	mux.HandleFunc("/api/players/{playerId}/reset", auth.Require(lotHandler.ResetPlayer))

	mux.HandleFunc("/api/teams", teamHandler.GetTeams)
	mux.HandleFunc("/api/teams/new", auth.Require(teamHandler.CreateTeam))
	mux.HandleFunc("GET /api/teams/{teamId}", teamHandler.GetTeam)

	mux.HandleFunc("/api/auctions/{auctionId}/lot/{playerId}/open", auth.Require(lotHandler.OpenLot))
	mux.HandleFunc("/api/auctions/{auctionId}/lot/{playerId}/bid", auth.Require(lotHandler.PlaceBid))
	mux.HandleFunc("/api/auctions/{auctionId}/lot/{playerId}/sell", auth.Require(lotHandler.Sell))
	mux.HandleFunc("/api/auctions/{auctionId}/lot/{playerId}/unsold", auth.Require(lotHandler.MarkUnsold))
	mux.HandleFunc("GET /api/auctions/{auctionId}/lot/{playerId}/highest", lotHandler.GetCurrentHighest)

	mux.HandleFunc("/api/bids/{playerId}/list", lotHandler.GetPlayerBids)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	return c.Handler(mux)
}
