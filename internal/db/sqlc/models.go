package db

import (
	"time"
)

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleMember UserRole = "member"
)

type PlayerStatus string

const (
	PlayerStatusAvailable PlayerStatus = "available"
	PlayerStatusInAuction PlayerStatus = "in_auction"
	PlayerStatusSold      PlayerStatus = "sold"
)

type BasePriceStatus string

const (
	BasePriceStatusPending BasePriceStatus = "pending"
	BasePriceStatusSet     BasePriceStatus = "set"
)

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	FullName       string    `json:"full_name"`
	Role           UserRole  `json:"role"`
	TeamID         *int64    `json:"team_id"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Player is an auction lot. FinalBid and FinalTeamID track the current
// leading bid while the player is in auction and freeze into sale history
// once the player is sold; they are always both set or both unset.
type Player struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	AffiliationRole string          `json:"affiliation_role"`
	Category        *string         `json:"category"`
	Age             *int32          `json:"age"`
	BattingStyle    *string         `json:"batting_style"`
	BowlingStyle    *string         `json:"bowling_style"`
	Bio             *string         `json:"bio"`
	BasePrice       *int64          `json:"base_price"`
	BasePriceStatus BasePriceStatus `json:"base_price_status"`
	Status          PlayerStatus    `json:"status"`
	FinalBid        *int64          `json:"final_bid"`
	FinalTeamID     *int64          `json:"final_team_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Team budget is committed on every accepted bid; it is never negative.
type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Budget    int64     `json:"budget"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuctionConfig is the singleton auction state record (key is always
// "auction"). It is created lazily by the first start/stop command.
type AuctionConfig struct {
	Key             string     `json:"key"`
	Active          bool       `json:"active"`
	CurrentPlayerID *int64     `json:"current_player_id"`
	StartedAt       *time.Time `json:"started_at"`
	StoppedAt       *time.Time `json:"stopped_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type Notification struct {
	ID          int64     `json:"id"`
	RecipientID string    `json:"recipient_id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Type        string    `json:"type"`
	ReferenceID string    `json:"reference_id"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}
