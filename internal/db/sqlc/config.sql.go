package db

import (
	"context"
)

const getAuctionConfig = `-- name: GetAuctionConfig :one
SELECT key, active, current_player_id, started_at, stopped_at, updated_at
FROM auction_config
WHERE key = 'auction'
`

func (q *Queries) GetAuctionConfig(ctx context.Context) (AuctionConfig, error) {
	row := q.db.QueryRow(ctx, getAuctionConfig)
	var i AuctionConfig
	err := row.Scan(
		&i.Key,
		&i.Active,
		&i.CurrentPlayerID,
		&i.StartedAt,
		&i.StoppedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const setAuctionActive = `-- name: SetAuctionActive :one
INSERT INTO auction_config (key, active, started_at, stopped_at)
VALUES ('auction', $1,
        CASE WHEN $1 THEN now() END,
        CASE WHEN NOT $1 THEN now() END)
ON CONFLICT (key) DO UPDATE
SET active     = excluded.active,
    started_at = CASE WHEN excluded.active THEN now() ELSE auction_config.started_at END,
    stopped_at = CASE WHEN NOT excluded.active THEN now() ELSE auction_config.stopped_at END,
    updated_at = now()
RETURNING key, active, current_player_id, started_at, stopped_at, updated_at
`

// SetAuctionActive upserts the singleton config row. Starting an already
// started auction simply re-stamps started_at; same for stop.
func (q *Queries) SetAuctionActive(ctx context.Context, active bool) (AuctionConfig, error) {
	row := q.db.QueryRow(ctx, setAuctionActive, active)
	var i AuctionConfig
	err := row.Scan(
		&i.Key,
		&i.Active,
		&i.CurrentPlayerID,
		&i.StartedAt,
		&i.StoppedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const setCurrentPlayer = `-- name: SetCurrentPlayer :one
INSERT INTO auction_config (key, active, current_player_id)
VALUES ('auction', false, $1)
ON CONFLICT (key) DO UPDATE
SET current_player_id = excluded.current_player_id,
    updated_at        = now()
RETURNING key, active, current_player_id, started_at, stopped_at, updated_at
`

func (q *Queries) SetCurrentPlayer(ctx context.Context, playerID int64) (AuctionConfig, error) {
	row := q.db.QueryRow(ctx, setCurrentPlayer, playerID)
	var i AuctionConfig
	err := row.Scan(
		&i.Key,
		&i.Active,
		&i.CurrentPlayerID,
		&i.StartedAt,
		&i.StoppedAt,
		&i.UpdatedAt,
	)
	return i, err
}
