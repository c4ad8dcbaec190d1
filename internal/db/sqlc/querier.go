package db

import (
	"context"
)

type Querier interface {
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	GetUserByID(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	UpdateUserTeam(ctx context.Context, arg UpdateUserTeamParams) (User, error)
	ListUsersByTeamID(ctx context.Context, teamID int64) ([]User, error)

	CreatePlayer(ctx context.Context, arg CreatePlayerParams) (Player, error)
	GetPlayerByID(ctx context.Context, id int64) (Player, error)
	GetPlayerBySlug(ctx context.Context, slug string) (Player, error)
	GetPlayerByIDForUpdate(ctx context.Context, id int64) (Player, error)
	GetNextAvailablePlayer(ctx context.Context) (Player, error)
	ListPlayers(ctx context.Context) ([]Player, error)
	ListPendingBasePricePlayers(ctx context.Context) ([]Player, error)
	UpdatePlayer(ctx context.Context, arg UpdatePlayerParams) (Player, error)
	SetPlayerBasePrice(ctx context.Context, arg SetPlayerBasePriceParams) (Player, error)
	DeletePlayer(ctx context.Context, id int64) error

	CreateTeam(ctx context.Context, arg CreateTeamParams) (Team, error)
	GetTeamByID(ctx context.Context, id int64) (Team, error)
	GetTeamByIDForUpdate(ctx context.Context, id int64) (Team, error)
	ListTeams(ctx context.Context) ([]Team, error)
	UpdateTeam(ctx context.Context, arg UpdateTeamParams) (Team, error)
	DeleteTeam(ctx context.Context, id int64) error

	GetAuctionConfig(ctx context.Context) (AuctionConfig, error)
	SetAuctionActive(ctx context.Context, active bool) (AuctionConfig, error)
	SetCurrentPlayer(ctx context.Context, playerID int64) (AuctionConfig, error)

	CreateNotification(ctx context.Context, arg CreateNotificationParams) (Notification, error)
	ListNotificationsByRecipient(ctx context.Context, recipientID string) ([]Notification, error)
}

var _ Querier = (*Queries)(nil)
