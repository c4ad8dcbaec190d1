package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	db "github.com/deepakscse/auction-BE/internal/db/sqlc"
	"github.com/deepakscse/auction-BE/internal/session"
	"github.com/deepakscse/auction-BE/internal/token"
	"github.com/deepakscse/auction-BE/internal/util"
	"github.com/deepakscse/auction-BE/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type registerUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
}

func (server *Server) registerUser(ctx *gin.Context) {
	req := new(registerUserRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.ValidateEmail(email); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	if err := validator.ValidatePassword(req.Password); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	hashedPassword, err := util.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Msg("failed to hash password")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	role := db.UserRoleMember
	if server.config.IsAdminEmail(email) {
		role = db.UserRoleAdmin
	}

	user, err := server.dbStore.CreateUser(ctx, db.CreateUserParams{
		ID:             uuid.NewString(),
		Email:          email,
		HashedPassword: hashedPassword,
		FullName:       strings.TrimSpace(req.FullName),
		Role:           role,
	})
	if err != nil {
		errCode, constraintName := db.ErrorDescription(err)
		if errors.Is(err, db.ErrUniqueViolation) ||
			(errCode == db.UniqueViolationCode && constraintName == db.UniqueEmailConstraint) {
			ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("email already registered")))
			return
		}

		log.Err(err).Msg("failed to create user")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"ok": true, "user": user, "message": "Registered. Please log in."})
}

type loginUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginUserResponse struct {
	AccessToken           string    `json:"access_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	User                  db.User   `json:"user"`
}

func (server *Server) loginUser(ctx *gin.Context) {
	req := new(loginUserRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	user, err := server.dbStore.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, errorResponse(errors.New("invalid credentials")))
			return
		}

		log.Err(err).Msg("failed to find user")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	if err = util.CheckPassword(req.Password, user.HashedPassword); err != nil {
		ctx.JSON(http.StatusUnauthorized, errorResponse(errors.New("invalid credentials")))
		return
	}

	if !user.IsActive {
		ctx.JSON(http.StatusUnauthorized, errorResponse(errors.New("user is disabled")))
		return
	}

	accessToken, accessPayload, err := server.tokenMaker.CreateToken(user.ID, string(user.Role), user.TeamID, token.TypeAccess, server.config.AccessTokenDuration)
	if err != nil {
		log.Err(err).Msg("failed to create access token")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	refreshToken, refreshPayload, err := server.tokenMaker.CreateToken(user.ID, string(user.Role), user.TeamID, token.TypeRefresh, server.config.RefreshTokenDuration)
	if err != nil {
		log.Err(err).Msg("failed to create refresh token")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	if err = server.sessions.Create(ctx, refreshPayload.ID, user.ID, server.config.RefreshTokenDuration); err != nil {
		log.Err(err).Msg("failed to register refresh session")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	resp := loginUserResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessPayload.ExpiresAt.Time,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshPayload.ExpiresAt.Time,
		User:                  user,
	}
	ctx.JSON(http.StatusOK, resp)
}

type refreshAccessTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type refreshAccessTokenResponse struct {
	AccessToken          string    `json:"access_token"`
	AccessTokenExpiresAt time.Time `json:"access_token_expires_at"`
}

func (server *Server) refreshAccessToken(ctx *gin.Context) {
	req := new(refreshAccessTokenRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	payload, err := server.tokenMaker.VerifyToken(req.RefreshToken)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, errorResponse(err))
		return
	}
	if payload.Type != token.TypeRefresh {
		ctx.JSON(http.StatusUnauthorized, errorResponse(ErrRefreshTokenRequired))
		return
	}

	userID, err := server.sessions.Validate(ctx, payload.ID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			ctx.JSON(http.StatusUnauthorized, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to validate refresh session")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	if userID != payload.Subject {
		ctx.JSON(http.StatusUnauthorized, errorResponse(session.ErrSessionNotFound))
		return
	}

	user, err := server.dbStore.GetUserByID(ctx, payload.Subject)
	if err != nil || !user.IsActive {
		ctx.JSON(http.StatusUnauthorized, errorResponse(errors.New("user not found or disabled")))
		return
	}

	accessToken, accessPayload, err := server.tokenMaker.CreateToken(user.ID, string(user.Role), user.TeamID, token.TypeAccess, server.config.AccessTokenDuration)
	if err != nil {
		log.Err(err).Msg("failed to create access token")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, refreshAccessTokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: accessPayload.ExpiresAt.Time,
	})
}

func (server *Server) getCurrentUser(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)

	user, err := server.dbStore.GetUserByID(ctx, authPayload.Subject)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, errorResponse(errors.New("user not found or disabled")))
			return
		}

		log.Err(err).Msg("failed to get user")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}

type verifyAccessTokenRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

func (server *Server) verifyAccessToken(ctx *gin.Context) {
	req := new(verifyAccessTokenRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	payload, err := server.tokenMaker.VerifyToken(req.AccessToken)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, errorResponse(err))
		return
	}
	if payload.Type != token.TypeAccess {
		ctx.JSON(http.StatusUnauthorized, errorResponse(ErrAccessTokenRequired))
		return
	}

	user, err := server.dbStore.GetUserByID(ctx, payload.Subject)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, errorResponse(err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

func (server *Server) listMyNotifications(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)

	notifications, err := server.dbStore.ListNotificationsByRecipient(ctx, authPayload.Subject)
	if err != nil {
		log.Err(err).Msg("failed to list notifications")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "notifications": notifications})
}

type assignUserTeamRequest struct {
	TeamID *int64 `json:"team_id"`
}

// assignUserTeam links a user to the team they may bid for. Passing a null
// team_id detaches the user.
func (server *Server) assignUserTeam(ctx *gin.Context) {
	userID := ctx.Param("userID")

	req := new(assignUserTeamRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if req.TeamID != nil {
		if _, err := server.dbStore.GetTeamByID(ctx, *req.TeamID); err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, errorResponse(errors.New("team not found: "+strconv.FormatInt(*req.TeamID, 10))))
				return
			}

			log.Err(err).Msg("failed to get team")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
			return
		}
	}

	user, err := server.dbStore.UpdateUserTeam(ctx, db.UpdateUserTeamParams{
		ID:     userID,
		TeamID: req.TeamID,
	})
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(errors.New("user not found")))
			return
		}

		log.Err(err).Msg("failed to assign user team")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}
