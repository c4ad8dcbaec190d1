package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	db "github.com/deepakscse/auction-BE/internal/db/sqlc"
	"github.com/deepakscse/auction-BE/internal/util"
	"github.com/deepakscse/auction-BE/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var allowedAffiliationRoles = map[string]bool{
	"Student": true,
	"Faculty": true,
	"Alumni":  true,
}

type playerResponse struct {
	db.Player
	FinalTeamName *string `json:"final_team_name,omitempty"`
}

func (server *Server) enrichPlayers(ctx *gin.Context, players []db.Player) ([]playerResponse, error) {
	teams, err := server.dbStore.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	teamNames := make(map[int64]string, len(teams))
	for _, team := range teams {
		teamNames[team.ID] = team.Name
	}

	out := make([]playerResponse, 0, len(players))
	for _, player := range players {
		resp := playerResponse{Player: player}
		if player.FinalTeamID != nil {
			if name, ok := teamNames[*player.FinalTeamID]; ok {
				resp.FinalTeamName = util.StringPointer(name)
			}
		}
		out = append(out, resp)
	}

	return out, nil
}

func (server *Server) listPlayers(ctx *gin.Context) {
	players, err := server.dbStore.ListPlayers(ctx)
	if err != nil {
		log.Err(err).Msg("failed to list players")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	enriched, err := server.enrichPlayers(ctx, players)
	if err != nil {
		log.Err(err).Msg("failed to enrich players with team names")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "players": enriched})
}

func (server *Server) getPlayer(ctx *gin.Context) {
	playerID, err := strconv.ParseInt(ctx.Param("playerID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("invalid player id")))
		return
	}

	player, err := server.dbStore.GetPlayerByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("player not found: %d", playerID)))
			return
		}

		log.Err(err).Msg("failed to get player")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "player": player})
}

func (server *Server) getPlayerBySlug(ctx *gin.Context) {
	playerSlug := ctx.Param("slug")

	player, err := server.dbStore.GetPlayerBySlug(ctx, playerSlug)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("player not found: %s", playerSlug)))
			return
		}

		log.Err(err).Msg("failed to get player by slug")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "player": player})
}

type createPlayerRequest struct {
	Name            string  `json:"name" binding:"required"`
	AffiliationRole string  `json:"affiliation_role" binding:"required"`
	Category        *string `json:"category"`
	Age             *int32  `json:"age"`
	BattingStyle    *string `json:"batting_style"`
	BowlingStyle    *string `json:"bowling_style"`
	Bio             *string `json:"bio"`
}

func (server *Server) insertPlayer(ctx *gin.Context, req *createPlayerRequest, status int) {
	name := strings.TrimSpace(req.Name)
	if err := validator.ValidateDisplayName(name); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	if !allowedAffiliationRoles[req.AffiliationRole] {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("affiliation_role must be one of Student, Faculty, Alumni")))
		return
	}

	player, err := server.dbStore.CreatePlayer(ctx, db.CreatePlayerParams{
		Name:            name,
		Slug:            util.GenerateRandomSlug(name),
		AffiliationRole: req.AffiliationRole,
		Category:        req.Category,
		Age:             req.Age,
		BattingStyle:    req.BattingStyle,
		BowlingStyle:    req.BowlingStyle,
		Bio:             req.Bio,
	})
	if err != nil {
		log.Err(err).Msg("failed to create player")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(status, gin.H{"ok": true, "player": player})
}

func (server *Server) createPlayer(ctx *gin.Context) {
	req := new(createPlayerRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	server.insertPlayer(ctx, req, http.StatusCreated)
}

// publicRegisterPlayer lets anyone submit a player profile. The player enters
// the pool with base_price_status 'pending' until an admin prices it.
func (server *Server) publicRegisterPlayer(ctx *gin.Context) {
	req := new(createPlayerRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	server.insertPlayer(ctx, req, http.StatusCreated)
}

type updatePlayerRequest struct {
	Name            *string `json:"name"`
	AffiliationRole *string `json:"affiliation_role"`
	Category        *string `json:"category"`
	Age             *int32  `json:"age"`
	BattingStyle    *string `json:"batting_style"`
	BowlingStyle    *string `json:"bowling_style"`
	Bio             *string `json:"bio"`
}

func (server *Server) updatePlayer(ctx *gin.Context) {
	playerID, err := strconv.ParseInt(ctx.Param("playerID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("invalid player id")))
		return
	}

	req := new(updatePlayerRequest)
	if err = ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if req.AffiliationRole != nil && !allowedAffiliationRoles[*req.AffiliationRole] {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("affiliation_role must be one of Student, Faculty, Alumni")))
		return
	}

	player, err := server.dbStore.UpdatePlayer(ctx, db.UpdatePlayerParams{
		ID:              playerID,
		Name:            req.Name,
		AffiliationRole: req.AffiliationRole,
		Category:        req.Category,
		Age:             req.Age,
		BattingStyle:    req.BattingStyle,
		BowlingStyle:    req.BowlingStyle,
		Bio:             req.Bio,
	})
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("player not found: %d", playerID)))
			return
		}

		log.Err(err).Msg("failed to update player")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "player": player})
}

func (server *Server) deletePlayer(ctx *gin.Context) {
	playerID, err := strconv.ParseInt(ctx.Param("playerID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("invalid player id")))
		return
	}

	if err = server.dbStore.DeletePlayer(ctx, playerID); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("player not found: %d", playerID)))
			return
		}

		log.Err(err).Msg("failed to delete player")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func (server *Server) listPendingPlayers(ctx *gin.Context) {
	players, err := server.dbStore.ListPendingBasePricePlayers(ctx)
	if err != nil {
		log.Err(err).Msg("failed to list pending players")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "players": players})
}

type setPlayerBasePriceRequest struct {
	BasePrice int64 `json:"base_price" binding:"required,gt=0"`
}

func (server *Server) setPlayerBasePrice(ctx *gin.Context) {
	playerID, err := strconv.ParseInt(ctx.Param("playerID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("invalid player id")))
		return
	}

	req := new(setPlayerBasePriceRequest)
	if err = ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	player, err := server.dbStore.SetPlayerBasePrice(ctx, db.SetPlayerBasePriceParams{
		ID:        playerID,
		BasePrice: req.BasePrice,
	})
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("player not found: %d", playerID)))
			return
		}

		log.Err(err).Msg("failed to set player base price")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "player": player})
}
