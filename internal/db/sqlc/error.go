package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	UniqueViolationCode = "23505"
)

const (
	UniqueEmailConstraint    = "users_email_key"
	UniqueTeamNameConstraint = "teams_name_key"
)

var ErrRecordNotFound = pgx.ErrNoRows

// ErrUniqueViolation is returned by the in-memory store where Postgres
// would raise a 23505; handlers treat both the same way.
var ErrUniqueViolation = errors.New("unique constraint violation")

// Business-rule failures surfaced by the bid transactions. Handlers map
// these to the HTTP error taxonomy.
var (
	ErrAuctionNotActive    = errors.New("auction is not active")
	ErrBidNotPositive      = errors.New("bid amount must be positive")
	ErrInsufficientBudget  = errors.New("team does not have enough budget")
	ErrBidTooLow           = errors.New("bid must be higher than current highest bid")
	ErrPlayerAlreadySold   = errors.New("player has already been sold")
	ErrNoBidPlaced         = errors.New("player must have a bid before marking sold")
	ErrOrphanCurrentPlayer = errors.New("current player reference does not resolve")
)

// ErrorDescription returns the error code and constraint name from a
// Postgres error.
func ErrorDescription(err error) (errCode string, constraintName string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}

	return
}
