package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	minPollTimeout     = 1 * time.Second
	maxPollTimeout     = 60 * time.Second
	defaultPollTimeout = 25 * time.Second

	defaultEventLimit = 200
)

type getAuctionEventsRequest struct {
	SinceID int64 `form:"since_id"`
	Timeout int64 `form:"timeout"`
	Limit   int   `form:"limit"`
}

// getAuctionEvents is the long-poll endpoint. It returns immediately when
// events newer than since_id are retained, otherwise it parks the request
// until something is published or the timeout elapses. A timeout is a normal
// empty response, not an error.
func (server *Server) getAuctionEvents(ctx *gin.Context) {
	req := new(getAuctionEventsRequest)

	if err := ctx.ShouldBindQuery(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if req.SinceID < 0 {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("since_id cannot be negative")))
		return
	}

	timeout := defaultPollTimeout
	if req.Timeout > 0 {
		timeout = time.Duration(req.Timeout) * time.Second
	}
	if timeout < minPollTimeout {
		timeout = minPollTimeout
	}
	if timeout > maxPollTimeout {
		timeout = maxPollTimeout
	}

	limit := defaultEventLimit
	if req.Limit > 0 && req.Limit < defaultEventLimit {
		limit = req.Limit
	}

	waitCtx, cancel := context.WithTimeout(ctx.Request.Context(), timeout)
	defer cancel()

	events := server.eventHub.Wait(waitCtx, req.SinceID, limit)

	ctx.JSON(http.StatusOK, gin.H{"events": events})
}
