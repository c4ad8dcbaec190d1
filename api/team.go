package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	db "github.com/deepakscse/auction-BE/internal/db/sqlc"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func (server *Server) listTeams(ctx *gin.Context) {
	teams, err := server.dbStore.ListTeams(ctx)
	if err != nil {
		log.Err(err).Msg("failed to list teams")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "teams": teams})
}

func (server *Server) getTeam(ctx *gin.Context) {
	teamID, err := strconv.ParseInt(ctx.Param("teamID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("invalid team id")))
		return
	}

	team, err := server.dbStore.GetTeamByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("team not found: %d", teamID)))
			return
		}

		log.Err(err).Msg("failed to get team")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "team": team})
}

type createTeamRequest struct {
	Name   string `json:"name" binding:"required"`
	Budget int64  `json:"budget" binding:"required,gt=0"`
}

func (server *Server) createTeam(ctx *gin.Context) {
	req := new(createTeamRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	team, err := server.dbStore.CreateTeam(ctx, db.CreateTeamParams{
		Name:   req.Name,
		Budget: req.Budget,
	})
	if err != nil {
		errCode, constraintName := db.ErrorDescription(err)
		if errors.Is(err, db.ErrUniqueViolation) ||
			(errCode == db.UniqueViolationCode && constraintName == db.UniqueTeamNameConstraint) {
			ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("team name already taken")))
			return
		}

		log.Err(err).Msg("failed to create team")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"ok": true, "team": team})
}

type updateTeamRequest struct {
	Name   *string `json:"name"`
	Budget *int64  `json:"budget"`
}

func (server *Server) updateTeam(ctx *gin.Context) {
	teamID, err := strconv.ParseInt(ctx.Param("teamID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("invalid team id")))
		return
	}

	req := new(updateTeamRequest)
	if err = ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if req.Budget != nil && *req.Budget < 0 {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("budget cannot be negative")))
		return
	}

	team, err := server.dbStore.UpdateTeam(ctx, db.UpdateTeamParams{
		ID:     teamID,
		Name:   req.Name,
		Budget: req.Budget,
	})
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("team not found: %d", teamID)))
			return
		}

		log.Err(err).Msg("failed to update team")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "team": team})
}

func (server *Server) deleteTeam(ctx *gin.Context) {
	teamID, err := strconv.ParseInt(ctx.Param("teamID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("invalid team id")))
		return
	}

	if err = server.dbStore.DeleteTeam(ctx, teamID); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("team not found: %d", teamID)))
			return
		}

		log.Err(err).Msg("failed to delete team")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
