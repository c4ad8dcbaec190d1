package db

import (
	"context"
)

const createNotification = `-- name: CreateNotification :one
INSERT INTO notifications (recipient_id, title, message, type, reference_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, recipient_id, title, message, type, reference_id, is_read, created_at
`

type CreateNotificationParams struct {
	RecipientID string `json:"recipient_id"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Type        string `json:"type"`
	ReferenceID string `json:"reference_id"`
}

func (q *Queries) CreateNotification(ctx context.Context, arg CreateNotificationParams) (Notification, error) {
	row := q.db.QueryRow(ctx, createNotification,
		arg.RecipientID,
		arg.Title,
		arg.Message,
		arg.Type,
		arg.ReferenceID,
	)
	var i Notification
	err := row.Scan(
		&i.ID,
		&i.RecipientID,
		&i.Title,
		&i.Message,
		&i.Type,
		&i.ReferenceID,
		&i.IsRead,
		&i.CreatedAt,
	)
	return i, err
}

const listNotificationsByRecipient = `-- name: ListNotificationsByRecipient :many
SELECT id, recipient_id, title, message, type, reference_id, is_read, created_at
FROM notifications
WHERE recipient_id = $1
ORDER BY created_at DESC
LIMIT 100
`

func (q *Queries) ListNotificationsByRecipient(ctx context.Context, recipientID string) ([]Notification, error) {
	rows, err := q.db.Query(ctx, listNotificationsByRecipient, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Notification{}
	for rows.Next() {
		var i Notification
		if err := rows.Scan(
			&i.ID,
			&i.RecipientID,
			&i.Title,
			&i.Message,
			&i.Type,
			&i.ReferenceID,
			&i.IsRead,
			&i.CreatedAt,
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
