package db

import (
	"context"
)

const createTeam = `-- name: CreateTeam :one
INSERT INTO teams (name, budget)
VALUES ($1, $2)
RETURNING id, name, budget, created_at, updated_at
`

type CreateTeamParams struct {
	Name   string `json:"name"`
	Budget int64  `json:"budget"`
}

func (q *Queries) CreateTeam(ctx context.Context, arg CreateTeamParams) (Team, error) {
	row := q.db.QueryRow(ctx, createTeam, arg.Name, arg.Budget)
	var i Team
	err := row.Scan(&i.ID, &i.Name, &i.Budget, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getTeamByID = `-- name: GetTeamByID :one
SELECT id, name, budget, created_at, updated_at FROM teams WHERE id = $1
`

func (q *Queries) GetTeamByID(ctx context.Context, id int64) (Team, error) {
	row := q.db.QueryRow(ctx, getTeamByID, id)
	var i Team
	err := row.Scan(&i.ID, &i.Name, &i.Budget, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getTeamByIDForUpdate = `-- name: GetTeamByIDForUpdate :one
SELECT id, name, budget, created_at, updated_at FROM teams WHERE id = $1 FOR NO KEY UPDATE
`

// GetTeamByIDForUpdate locks the team row so the budget check and the
// decrement happen under one lock.
func (q *Queries) GetTeamByIDForUpdate(ctx context.Context, id int64) (Team, error) {
	row := q.db.QueryRow(ctx, getTeamByIDForUpdate, id)
	var i Team
	err := row.Scan(&i.ID, &i.Name, &i.Budget, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const listTeams = `-- name: ListTeams :many
SELECT id, name, budget, created_at, updated_at FROM teams ORDER BY id ASC
`

func (q *Queries) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := q.db.Query(ctx, listTeams)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Team{}
	for rows.Next() {
		var i Team
		if err := rows.Scan(&i.ID, &i.Name, &i.Budget, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateTeam = `-- name: UpdateTeam :one
UPDATE teams
SET name       = coalesce($2, name),
    budget     = coalesce($3, budget),
    updated_at = now()
WHERE id = $1
RETURNING id, name, budget, created_at, updated_at
`

type UpdateTeamParams struct {
	ID     int64   `json:"id"`
	Name   *string `json:"name"`
	Budget *int64  `json:"budget"`
}

func (q *Queries) UpdateTeam(ctx context.Context, arg UpdateTeamParams) (Team, error) {
	row := q.db.QueryRow(ctx, updateTeam, arg.ID, arg.Name, arg.Budget)
	var i Team
	err := row.Scan(&i.ID, &i.Name, &i.Budget, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const deleteTeam = `-- name: DeleteTeam :exec
DELETE FROM teams WHERE id = $1
`

func (q *Queries) DeleteTeam(ctx context.Context, id int64) error {
	result, err := q.db.Exec(ctx, deleteTeam, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}
