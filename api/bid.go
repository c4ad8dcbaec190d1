package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	db "github.com/deepakscse/auction-BE/internal/db/sqlc"
	"github.com/deepakscse/auction-BE/internal/hub"
	"github.com/deepakscse/auction-BE/internal/token"
	"github.com/deepakscse/auction-BE/internal/util"
	"github.com/deepakscse/auction-BE/internal/worker"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

type placeBidRequest struct {
	PlayerID int64 `json:"player_id"`
	TeamID   int64 `json:"team_id"`
	Amount   int64 `json:"amount"`
}

// placeBid accepts a bid on behalf of a team. Members may only bid for the
// team they are assigned to; admins may bid for any team.
func (server *Server) placeBid(ctx *gin.Context) {
	req := new(placeBidRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)
	if authPayload.Role != "admin" {
		if authPayload.TeamID == nil {
			ctx.JSON(http.StatusForbidden, errorResponse(ErrNotAssignedToTeam))
			return
		}
		if *authPayload.TeamID != req.TeamID {
			ctx.JSON(http.StatusForbidden, errorResponse(ErrBidForOtherTeam))
			return
		}
	}

	// Resolve both references before the transaction so missing ones come
	// back as precise 404s rather than a generic failure.
	if _, err := server.dbStore.GetPlayerByID(ctx, req.PlayerID); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("player not found: %d", req.PlayerID)))
			return
		}

		log.Err(err).Msg("failed to get player")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	if _, err := server.dbStore.GetTeamByID(ctx, req.TeamID); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("team not found: %d", req.TeamID)))
			return
		}

		log.Err(err).Msg("failed to get team")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	result, err := server.dbStore.PlaceBidTx(ctx, db.PlaceBidTxParams{
		PlayerID: req.PlayerID,
		TeamID:   req.TeamID,
		Amount:   req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, db.ErrAuctionNotActive), errors.Is(err, db.ErrPlayerAlreadySold):
			ctx.JSON(http.StatusUnprocessableEntity, errorResponse(err))
		case errors.Is(err, db.ErrBidNotPositive), errors.Is(err, db.ErrInsufficientBudget), errors.Is(err, db.ErrBidTooLow):
			ctx.JSON(http.StatusBadRequest, errorResponse(err))
		case errors.Is(err, db.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, errorResponse(errors.New("player or team not found")))
		default:
			log.Err(err).Msg("failed to place bid")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		}
		return
	}

	server.eventHub.Publish(hub.EventTypeBidPlaced, map[string]interface{}{
		"player_id": result.Player.ID,
		"team_id":   result.Team.ID,
		"amount":    result.Amount,
	})

	// Notify the outbid team's members after the bid is committed.
	if result.PreviousTeamID != nil && *result.PreviousTeamID != result.Team.ID {
		go server.notifyOutbidTeam(*result.PreviousTeamID, result)
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "player": result.Player, "team": result.Team})
}

func (server *Server) notifyOutbidTeam(outbidTeamID int64, result db.PlaceBidTxResult) {
	taskCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	members, err := server.dbStore.ListUsersByTeamID(taskCtx, outbidTeamID)
	if err != nil {
		log.Error().Err(err).Int64("team_id", outbidTeamID).Msg("failed to list outbid team members")
		return
	}

	title := fmt.Sprintf("Outbid on %s", result.Player.Name)
	message := fmt.Sprintf("%s is now leading with %s.", result.Team.Name, util.FormatMoney(result.Amount))
	referenceID := fmt.Sprintf("player:%d", result.Player.ID)

	for _, member := range members {
		payload := &worker.PayloadSendNotification{
			RecipientID: member.ID,
			Title:       title,
			Message:     message,
			Type:        "outbid",
			ReferenceID: referenceID,
		}
		if err := server.taskDistributor.DistributeTaskSendNotification(taskCtx, payload,
			asynq.MaxRetry(3), asynq.Queue(worker.QueueDefault)); err != nil {
			log.Error().Err(err).Str("recipient_id", member.ID).Msg("failed to enqueue outbid notification")
		}
	}
}
