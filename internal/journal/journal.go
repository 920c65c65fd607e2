package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Repository records every inbound processor callback for auditing.
// Journal writes must never influence the wire response: callers log
// failures and move on.
type Repository interface {
	SaveCallback(ctx context.Context, action string, payload json.RawMessage, signature string) (int64, error)
	MarkResult(ctx context.Context, callbackID int64, status, code string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SaveCallback(ctx context.Context, action string, payload json.RawMessage, signature string) (int64, error) {
	const q = `
	INSERT INTO platbox_callbacks (action, payload, signature)
	VALUES ($1, $2, $3)
	RETURNING id;
	`

	var id int64
	err := r.db.QueryRowContext(ctx, q, action, payload, signature).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to journal callback: %w", err)
	}
	return id, nil
}

func (r *repository) MarkResult(ctx context.Context, callbackID int64, status, code string) error {
	const q = `
	UPDATE platbox_callbacks
	SET result_status = $2, result_code = $3, processed_at = now()
	WHERE id = $1;
	`

	_, err := r.db.ExecContext(ctx, q, callbackID, status, code)
	return err
}
