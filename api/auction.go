package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	db "github.com/deepakscse/auction-BE/internal/db/sqlc"
	"github.com/deepakscse/auction-BE/internal/hub"
	"github.com/deepakscse/auction-BE/internal/worker"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

func (server *Server) getAuctionStatus(ctx *gin.Context) {
	cfg, err := server.dbStore.GetAuctionConfig(ctx)
	if err != nil && !errors.Is(err, db.ErrRecordNotFound) {
		log.Err(err).Msg("failed to get auction config")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	// Before the first start/stop command there is no config row; viewers
	// just see an inactive auction.
	ctx.JSON(http.StatusOK, gin.H{
		"active":            cfg.Active,
		"current_player_id": cfg.CurrentPlayerID,
		"started_at":        cfg.StartedAt,
		"stopped_at":        cfg.StoppedAt,
		"last_event_id":     server.eventHub.LastID(),
	})
}

func (server *Server) startAuction(ctx *gin.Context) {
	cfg, err := server.dbStore.SetAuctionActive(ctx, true)
	if err != nil {
		log.Err(err).Msg("failed to start auction")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	server.eventHub.Publish(hub.EventTypeAuctionStatus, map[string]interface{}{"active": true})

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "active": cfg.Active, "started_at": cfg.StartedAt})
}

func (server *Server) stopAuction(ctx *gin.Context) {
	cfg, err := server.dbStore.SetAuctionActive(ctx, false)
	if err != nil {
		log.Err(err).Msg("failed to stop auction")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	server.eventHub.Publish(hub.EventTypeAuctionStatus, map[string]interface{}{"active": false})

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "active": cfg.Active, "stopped_at": cfg.StoppedAt})
}

func (server *Server) getCurrentPlayer(ctx *gin.Context) {
	cfg, err := server.dbStore.GetAuctionConfig(ctx)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, gin.H{"message": "No current player"})
			return
		}

		log.Err(err).Msg("failed to get auction config")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	if cfg.CurrentPlayerID == nil {
		ctx.JSON(http.StatusOK, gin.H{"message": "No current player"})
		return
	}

	player, err := server.dbStore.GetPlayerByID(ctx, *cfg.CurrentPlayerID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			// The config points at a deleted player. Surface it loudly instead
			// of pretending the rotation is empty.
			log.Error().Int64("player_id", *cfg.CurrentPlayerID).Msg("current player reference does not resolve")
			ctx.JSON(http.StatusInternalServerError, errorResponse(db.ErrOrphanCurrentPlayer))
			return
		}

		log.Err(err).Msg("failed to get current player")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "player": player})
}

func (server *Server) setCurrentPlayer(ctx *gin.Context) {
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

	if _, err = server.dbStore.SetCurrentPlayer(ctx, player.ID); err != nil {
		log.Err(err).Msg("failed to set current player")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	server.publishCurrentPlayerChanged(player)

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "player": player})
}

// nextPlayer advances the rotation to the lowest-ID available player.
// Exhaustion is not an error; the admin gets a message instead.
func (server *Server) nextPlayer(ctx *gin.Context) {
	player, err := server.dbStore.GetNextAvailablePlayer(ctx)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, gin.H{"message": "No more available players"})
			return
		}

		log.Err(err).Msg("failed to pick next player")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	if _, err = server.dbStore.SetCurrentPlayer(ctx, player.ID); err != nil {
		log.Err(err).Msg("failed to set current player")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	server.publishCurrentPlayerChanged(player)

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "player": gin.H{
		"id":         player.ID,
		"name":       player.Name,
		"category":   player.Category,
		"base_price": player.BasePrice,
	}})
}

func (server *Server) publishCurrentPlayerChanged(player db.Player) {
	server.eventHub.Publish(hub.EventTypeCurrentPlayerChanged, map[string]interface{}{
		"player_id":  player.ID,
		"name":       player.Name,
		"category":   player.Category,
		"base_price": player.BasePrice,
	})
}

func (server *Server) markPlayerSold(ctx *gin.Context) {
	playerID, err := strconv.ParseInt(ctx.Param("playerID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("invalid player id")))
		return
	}

	player, err := server.dbStore.MarkPlayerSoldTx(ctx, playerID)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("player not found: %d", playerID)))
		case errors.Is(err, db.ErrPlayerAlreadySold), errors.Is(err, db.ErrNoBidPlaced):
			ctx.JSON(http.StatusUnprocessableEntity, errorResponse(err))
		default:
			log.Err(err).Msg("failed to mark player sold")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		}
		return
	}

	server.eventHub.Publish(hub.EventTypePlayerSold, map[string]interface{}{
		"player_id": player.ID,
		"name":      player.Name,
		"team_id":   player.FinalTeamID,
		"amount":    player.FinalBid,
	})

	// The sale is committed; announcing it happens off the request path.
	go func() {
		taskCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		teamName := ""
		if team, err := server.dbStore.GetTeamByID(taskCtx, *player.FinalTeamID); err == nil {
			teamName = team.Name
		} else {
			log.Error().Err(err).Int64("team_id", *player.FinalTeamID).Msg("failed to resolve winning team name")
		}

		payload := &worker.PayloadAnnounceSale{
			PlayerID:   player.ID,
			PlayerName: player.Name,
			TeamID:     *player.FinalTeamID,
			TeamName:   teamName,
			Amount:     *player.FinalBid,
		}
		if err := server.taskDistributor.DistributeTaskAnnounceSale(taskCtx, payload,
			asynq.MaxRetry(5), asynq.Queue(worker.QueueCritical)); err != nil {
			log.Error().Err(err).Int64("player_id", player.ID).Msg("failed to enqueue sale announcement")
		}
	}()

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "player": player})
}
