package api

import (
	"fmt"

	db "github.com/deepakscse/auction-BE/internal/db/sqlc"
	"github.com/deepakscse/auction-BE/internal/hub"
	"github.com/deepakscse/auction-BE/internal/session"
	"github.com/deepakscse/auction-BE/internal/token"
	"github.com/deepakscse/auction-BE/internal/util"
	"github.com/deepakscse/auction-BE/internal/worker"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	router          *gin.Engine
	dbStore         db.Store
	tokenMaker      token.Maker
	config          *util.Config
	eventHub        *hub.Hub
	sessions        *session.Manager
	taskDistributor worker.TaskDistributor
}

// NewServer creates a new HTTP server and sets up routing.
func NewServer(store db.Store, eventHub *hub.Hub, sessions *session.Manager, taskDistributor worker.TaskDistributor, config *util.Config) (*Server, error) {
	tokenMaker, err := token.NewJWTMaker(config.TokenSecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create token maker: %w", err)
	}

	server := &Server{
		dbStore:         store,
		tokenMaker:      tokenMaker,
		config:          config,
		eventHub:        eventHub,
		sessions:        sessions,
		taskDistributor: taskDistributor,
	}

	server.setupRouter()
	return server, nil
}

// setupRouter configures the HTTP server routes.
func (server *Server) setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     server.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	v1 := router.Group("/v1")

	v1.POST("/tokens/verify", server.verifyAccessToken)

	v1.POST("/auth/register", server.registerUser)
	v1.POST("/auth/login", server.loginUser)
	v1.POST("/auth/refresh", server.refreshAccessToken)

	v1.GET("/me", authMiddleware(server.tokenMaker), server.getCurrentUser)

	playerGroup := v1.Group("/players")
	{
		playerGroup.GET("", server.listPlayers)
		playerGroup.GET(":playerID", server.getPlayer)
		playerGroup.GET("by-slug/:slug", server.getPlayerBySlug)
		playerGroup.POST("public_register", server.publicRegisterPlayer)

		playerGroup.Use(authMiddleware(server.tokenMaker), requiredAdminRole())
		playerGroup.POST("", server.createPlayer)
		playerGroup.PUT(":playerID", server.updatePlayer)
		playerGroup.DELETE(":playerID", server.deletePlayer)
	}

	teamGroup := v1.Group("/teams")
	{
		teamGroup.GET("", server.listTeams)
		teamGroup.GET(":teamID", server.getTeam)

		teamGroup.Use(authMiddleware(server.tokenMaker), requiredAdminRole())
		teamGroup.POST("", server.createTeam)
		teamGroup.PUT(":teamID", server.updateTeam)
		teamGroup.DELETE(":teamID", server.deleteTeam)
	}

	auctionGroup := v1.Group("/auction")
	{
		// Public: the viewer fetches a snapshot, then long-polls /events.
		auctionGroup.GET("status", server.getAuctionStatus)
		auctionGroup.GET("current_player", server.getCurrentPlayer)
		auctionGroup.GET("events", server.getAuctionEvents)

		auctionGroup.POST("bid", authMiddleware(server.tokenMaker), server.placeBid)

		adminAuctionGroup := auctionGroup.Group("", authMiddleware(server.tokenMaker), requiredAdminRole())
		{
			adminAuctionGroup.POST("start", server.startAuction)
			adminAuctionGroup.POST("stop", server.stopAuction)
			adminAuctionGroup.POST("next_player", server.nextPlayer)
			adminAuctionGroup.POST("set_current_player/:playerID", server.setCurrentPlayer)
			adminAuctionGroup.POST("sold/:playerID", server.markPlayerSold)
		}
	}

	adminGroup := v1.Group("/admin", authMiddleware(server.tokenMaker), requiredAdminRole())
	{
		adminGroup.GET("players/pending", server.listPendingPlayers)
		adminGroup.PATCH("players/:playerID/base-price", server.setPlayerBasePrice)
		adminGroup.PATCH("users/:userID/team", server.assignUserTeam)
	}

	userGroup := v1.Group("/users/me", authMiddleware(server.tokenMaker))
	{
		userGroup.GET("notifications", server.listMyNotifications)
	}

	server.router = router
	return router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	return server.router.Run(address)
}
