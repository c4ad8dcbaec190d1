package db

import (
	"context"
)

const playerColumns = `id, name, slug, affiliation_role, category, age, batting_style, bowling_style, bio, base_price, base_price_status, status, final_bid, final_team_id, created_at, updated_at`

func scanPlayer(row interface{ Scan(dest ...interface{}) error }) (Player, error) {
	var i Player
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.AffiliationRole,
		&i.Category,
		&i.Age,
		&i.BattingStyle,
		&i.BowlingStyle,
		&i.Bio,
		&i.BasePrice,
		&i.BasePriceStatus,
		&i.Status,
		&i.FinalBid,
		&i.FinalTeamID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createPlayer = `-- name: CreatePlayer :one
INSERT INTO players (name, slug, affiliation_role, category, age, batting_style, bowling_style, bio)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + playerColumns

type CreatePlayerParams struct {
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	AffiliationRole string  `json:"affiliation_role"`
	Category        *string `json:"category"`
	Age             *int32  `json:"age"`
	BattingStyle    *string `json:"batting_style"`
	BowlingStyle    *string `json:"bowling_style"`
	Bio             *string `json:"bio"`
}

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (Player, error) {
	row := q.db.QueryRow(ctx, createPlayer,
		arg.Name,
		arg.Slug,
		arg.AffiliationRole,
		arg.Category,
		arg.Age,
		arg.BattingStyle,
		arg.BowlingStyle,
		arg.Bio,
	)
	return scanPlayer(row)
}

const getPlayerByID = `-- name: GetPlayerByID :one
SELECT ` + playerColumns + ` FROM players WHERE id = $1`

func (q *Queries) GetPlayerByID(ctx context.Context, id int64) (Player, error) {
	return scanPlayer(q.db.QueryRow(ctx, getPlayerByID, id))
}

const getPlayerBySlug = `-- name: GetPlayerBySlug :one
SELECT ` + playerColumns + ` FROM players WHERE slug = $1`

func (q *Queries) GetPlayerBySlug(ctx context.Context, slug string) (Player, error) {
	return scanPlayer(q.db.QueryRow(ctx, getPlayerBySlug, slug))
}

const getPlayerByIDForUpdate = `-- name: GetPlayerByIDForUpdate :one
SELECT ` + playerColumns + ` FROM players WHERE id = $1 FOR NO KEY UPDATE`

// GetPlayerByIDForUpdate locks the player row for the rest of the
// transaction so concurrent bids on the same player serialize.
func (q *Queries) GetPlayerByIDForUpdate(ctx context.Context, id int64) (Player, error) {
	return scanPlayer(q.db.QueryRow(ctx, getPlayerByIDForUpdate, id))
}

const getNextAvailablePlayer = `-- name: GetNextAvailablePlayer :one
SELECT ` + playerColumns + ` FROM players WHERE status = 'available' ORDER BY id ASC LIMIT 1`

// GetNextAvailablePlayer picks the unsold player in creation order, so
// repeated calls with no intervening sales are deterministic.
func (q *Queries) GetNextAvailablePlayer(ctx context.Context) (Player, error) {
	return scanPlayer(q.db.QueryRow(ctx, getNextAvailablePlayer))
}

const listPlayers = `-- name: ListPlayers :many
SELECT ` + playerColumns + ` FROM players ORDER BY id ASC`

func (q *Queries) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := q.db.Query(ctx, listPlayers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Player{}
	for rows.Next() {
		i, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listPendingBasePricePlayers = `-- name: ListPendingBasePricePlayers :many
SELECT ` + playerColumns + ` FROM players WHERE base_price_status = 'pending' ORDER BY id ASC`

func (q *Queries) ListPendingBasePricePlayers(ctx context.Context) ([]Player, error) {
	rows, err := q.db.Query(ctx, listPendingBasePricePlayers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Player{}
	for rows.Next() {
		i, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updatePlayer = `-- name: UpdatePlayer :one
UPDATE players
SET name             = coalesce($2, name),
    affiliation_role = coalesce($3, affiliation_role),
    category         = coalesce($4, category),
    age              = coalesce($5, age),
    batting_style    = coalesce($6, batting_style),
    bowling_style    = coalesce($7, bowling_style),
    bio              = coalesce($8, bio),
    updated_at       = now()
WHERE id = $1
RETURNING ` + playerColumns

type UpdatePlayerParams struct {
	ID              int64   `json:"id"`
	Name            *string `json:"name"`
	AffiliationRole *string `json:"affiliation_role"`
	Category        *string `json:"category"`
	Age             *int32  `json:"age"`
	BattingStyle    *string `json:"batting_style"`
	BowlingStyle    *string `json:"bowling_style"`
	Bio             *string `json:"bio"`
}

func (q *Queries) UpdatePlayer(ctx context.Context, arg UpdatePlayerParams) (Player, error) {
	row := q.db.QueryRow(ctx, updatePlayer,
		arg.ID,
		arg.Name,
		arg.AffiliationRole,
		arg.Category,
		arg.Age,
		arg.BattingStyle,
		arg.BowlingStyle,
		arg.Bio,
	)
	return scanPlayer(row)
}

const setPlayerBasePrice = `-- name: SetPlayerBasePrice :one
UPDATE players
SET base_price = $2, base_price_status = 'set', updated_at = now()
WHERE id = $1
RETURNING ` + playerColumns

type SetPlayerBasePriceParams struct {
	ID        int64 `json:"id"`
	BasePrice int64 `json:"base_price"`
}

func (q *Queries) SetPlayerBasePrice(ctx context.Context, arg SetPlayerBasePriceParams) (Player, error) {
	return scanPlayer(q.db.QueryRow(ctx, setPlayerBasePrice, arg.ID, arg.BasePrice))
}

const deletePlayer = `-- name: DeletePlayer :exec
DELETE FROM players WHERE id = $1`

func (q *Queries) DeletePlayer(ctx context.Context, id int64) error {
	result, err := q.db.Exec(ctx, deletePlayer, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}
