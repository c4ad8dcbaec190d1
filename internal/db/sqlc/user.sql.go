package db

import (
	"context"
)

const createUser = `-- name: CreateUser :one
INSERT INTO users (id, email, hashed_password, full_name, role, team_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, email, hashed_password, full_name, role, team_id, is_active, created_at, updated_at
`

type CreateUserParams struct {
	ID             string   `json:"id"`
	Email          string   `json:"email"`
	HashedPassword string   `json:"hashed_password"`
	FullName       string   `json:"full_name"`
	Role           UserRole `json:"role"`
	TeamID         *int64   `json:"team_id"`
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser,
		arg.ID,
		arg.Email,
		arg.HashedPassword,
		arg.FullName,
		arg.Role,
		arg.TeamID,
	)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.HashedPassword,
		&i.FullName,
		&i.Role,
		&i.TeamID,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getUserByID = `-- name: GetUserByID :one
SELECT id, email, hashed_password, full_name, role, team_id, is_active, created_at, updated_at
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.HashedPassword,
		&i.FullName,
		&i.Role,
		&i.TeamID,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT id, email, hashed_password, full_name, role, team_id, is_active, created_at, updated_at
FROM users
WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.HashedPassword,
		&i.FullName,
		&i.Role,
		&i.TeamID,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateUserTeam = `-- name: UpdateUserTeam :one
UPDATE users
SET team_id = $2, updated_at = now()
WHERE id = $1
RETURNING id, email, hashed_password, full_name, role, team_id, is_active, created_at, updated_at
`

type UpdateUserTeamParams struct {
	ID     string `json:"id"`
	TeamID *int64 `json:"team_id"`
}

func (q *Queries) UpdateUserTeam(ctx context.Context, arg UpdateUserTeamParams) (User, error) {
	row := q.db.QueryRow(ctx, updateUserTeam, arg.ID, arg.TeamID)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.HashedPassword,
		&i.FullName,
		&i.Role,
		&i.TeamID,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listUsersByTeamID = `-- name: ListUsersByTeamID :many
SELECT id, email, hashed_password, full_name, role, team_id, is_active, created_at, updated_at
FROM users
WHERE team_id = $1
ORDER BY created_at
`

func (q *Queries) ListUsersByTeamID(ctx context.Context, teamID int64) ([]User, error) {
	rows, err := q.db.Query(ctx, listUsersByTeamID, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []User{}
	for rows.Next() {
		var i User
		if err := rows.Scan(
			&i.ID,
			&i.Email,
			&i.HashedPassword,
			&i.FullName,
			&i.Role,
			&i.TeamID,
			&i.IsActive,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
