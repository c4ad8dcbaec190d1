package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Type discriminates short-lived access tokens from the longer-lived refresh
// tokens used solely to mint new access credentials.
type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

var ErrInvalidTokenType = errors.New("invalid token type")

type Payload struct {
	Role   string `json:"role"`
	TeamID *int64 `json:"team_id,omitempty"`
	Type   Type   `json:"typ"`
	jwt.RegisteredClaims
}

func NewPayload(userID string, role string, teamID *int64, tokenType Type, duration time.Duration) (payload Payload, err error) {
	tokenID, err := uuid.NewRandom()
	if err != nil {
		return payload, fmt.Errorf("failed to generate tokenID: %w", err)
	}

	payload = Payload{
		Role:   role,
		TeamID: teamID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			Issuer:    "auction-be",
			Subject:   userID,
			Audience:  jwt.ClaimStrings{"client"},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
		},
	}

	return payload, nil
}
