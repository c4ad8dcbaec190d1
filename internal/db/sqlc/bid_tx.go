package db

import (
	"context"
	"errors"
)

type PlaceBidTxParams struct {
	PlayerID int64 `json:"player_id"`
	TeamID   int64 `json:"team_id"`
	Amount   int64 `json:"amount"`
}

type PlaceBidTxResult struct {
	Player Player `json:"player"`
	Team   Team   `json:"team"`
	Amount int64  `json:"amount"`
	// PreviousTeamID is the team that was leading before this bid, if any.
	// Used to notify the outbid team; its spent budget is NOT restored.
	PreviousTeamID *int64 `json:"previous_team_id,omitempty"`
}

// validateBid applies the bid acceptance rules against a consistent view of
// the config, player and team records. Both the SQL transaction and the
// in-memory store run exactly this function so their semantics cannot drift.
func validateBid(cfg AuctionConfig, cfgFound bool, player Player, team Team, amount int64) error {
	if player.Status == PlayerStatusSold {
		return ErrPlayerAlreadySold
	}
	if !cfgFound || !cfg.Active {
		return ErrAuctionNotActive
	}
	if amount <= 0 {
		return ErrBidNotPositive
	}
	if amount > team.Budget {
		return ErrInsufficientBudget
	}

	var currentHighest int64
	if player.FinalBid != nil {
		currentHighest = *player.FinalBid
	}
	if amount <= currentHighest {
		return ErrBidTooLow
	}

	return nil
}

// PlaceBidTx validates and applies a single bid atomically. The player and
// team rows are locked for the duration of the transaction and every rule is
// re-checked under the lock, so two concurrent bids on the same player
// serialize instead of silently overwriting each other.
func (store *SQLStore) PlaceBidTx(ctx context.Context, arg PlaceBidTxParams) (PlaceBidTxResult, error) {
	var result PlaceBidTxResult

	err := store.ExecTx(ctx, func(qTx *Queries) error {
		// Lock order is always player then team to avoid deadlocks.
		player, err := qTx.GetPlayerByIDForUpdate(ctx, arg.PlayerID)
		if err != nil {
			return err
		}

		team, err := qTx.GetTeamByIDForUpdate(ctx, arg.TeamID)
		if err != nil {
			return err
		}

		cfg, err := qTx.GetAuctionConfig(ctx)
		cfgFound := true
		if err != nil {
			if !errors.Is(err, ErrRecordNotFound) {
				return err
			}
			cfgFound = false
		}

		if err = validateBid(cfg, cfgFound, player, team, arg.Amount); err != nil {
			return err
		}

		result.PreviousTeamID = player.FinalTeamID

		result.Player, err = qTx.applyPlayerBid(ctx, player.ID, team.ID, arg.Amount)
		if err != nil {
			return err
		}

		result.Team, err = qTx.decrementTeamBudget(ctx, team.ID, arg.Amount)
		if err != nil {
			return err
		}

		result.Amount = arg.Amount
		return nil
	})

	return result, err
}

// MarkPlayerSoldTx finalizes the sale of a player. It requires a prior
// accepted bid and is terminal: subsequent bids and re-sells fail.
func (store *SQLStore) MarkPlayerSoldTx(ctx context.Context, playerID int64) (Player, error) {
	var sold Player

	err := store.ExecTx(ctx, func(qTx *Queries) error {
		player, err := qTx.GetPlayerByIDForUpdate(ctx, playerID)
		if err != nil {
			return err
		}

		if player.Status == PlayerStatusSold {
			return ErrPlayerAlreadySold
		}
		if player.FinalBid == nil || player.FinalTeamID == nil {
			return ErrNoBidPlaced
		}

		sold, err = qTx.markPlayerSold(ctx, player.ID)
		return err
	})

	return sold, err
}

const applyPlayerBid = `
UPDATE players
SET final_bid = $2, final_team_id = $3, status = 'in_auction', updated_at = now()
WHERE id = $1
RETURNING ` + playerColumns

func (q *Queries) applyPlayerBid(ctx context.Context, playerID, teamID, amount int64) (Player, error) {
	return scanPlayer(q.db.QueryRow(ctx, applyPlayerBid, playerID, amount, teamID))
}

const decrementTeamBudget = `
UPDATE teams
SET budget = budget - $2, updated_at = now()
WHERE id = $1
RETURNING id, name, budget, created_at, updated_at
`

func (q *Queries) decrementTeamBudget(ctx context.Context, teamID, amount int64) (Team, error) {
	row := q.db.QueryRow(ctx, decrementTeamBudget, teamID, amount)
	var i Team
	err := row.Scan(&i.ID, &i.Name, &i.Budget, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const markPlayerSold = `
UPDATE players
SET status = 'sold', updated_at = now()
WHERE id = $1
RETURNING ` + playerColumns

func (q *Queries) markPlayerSold(ctx context.Context, playerID int64) (Player, error) {
	return scanPlayer(q.db.QueryRow(ctx, markPlayerSold, playerID))
}
