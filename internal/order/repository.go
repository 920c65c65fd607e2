package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Repository interface {
	GetOrder(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, expected, next OrderStatus) error
	MarkPaid(ctx context.Context, id string) error
	AddNote(ctx context.Context, orderID, note string) error
	SaveNotice(ctx context.Context, noticeID, orderID, severity, message string) error
	ReduceStock(ctx context.Context, orderID string) error
	ClearCart(ctx context.Context, orderID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrder(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, currency, total, status, created_at, updated_at
		FROM orders WHERE id = $1
	`, id)

	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.Currency, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// UpdateStatus is a compare-and-swap: the row is only updated when its
// current status still equals the status the caller validated against.
func (r *repository) UpdateStatus(ctx context.Context, id string, expected, next OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`, next, id, expected)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (r *repository) MarkPaid(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = 'processing', paid_at = now(), updated_at = now()
		WHERE id = $1 AND status IN ('pending', 'on-hold')
	`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (r *repository) AddNote(ctx context.Context, orderID, note string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO order_notes (order_id, note) VALUES ($1, $2)
	`, orderID, note)
	if err != nil {
		return fmt.Errorf("failed to add order note: %w", err)
	}
	return nil
}

func (r *repository) SaveNotice(ctx context.Context, noticeID, orderID, severity, message string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_notices (id, order_id, severity, message) VALUES ($1, $2, $3, $4)
	`, noticeID, orderID, severity, message)
	if err != nil {
		return fmt.Errorf("failed to save notice: %w", err)
	}
	return nil
}

func (r *repository) ReduceStock(ctx context.Context, orderID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products SET stock = products.stock - oi.quantity
		FROM order_items oi
		WHERE oi.order_id = $1 AND oi.product_id = products.id
	`, orderID)
	return err
}

func (r *repository) ClearCart(ctx context.Context, orderID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = (SELECT user_id FROM orders WHERE id = $1)
	`, orderID)
	return err
}
