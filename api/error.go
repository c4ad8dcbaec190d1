package api

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var (
	ErrInternalServer       = errors.New("internal server error")
	ErrNotAssignedToTeam    = errors.New("you are not assigned to any team")
	ErrBidForOtherTeam      = errors.New("you can only bid for your own team")
	ErrAdminRequired        = errors.New("admin privileges required")
	ErrAccessTokenRequired  = errors.New("token is not an access token")
	ErrRefreshTokenRequired = errors.New("token is not a refresh token")
)

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}
