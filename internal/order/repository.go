package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Al-Ghoul/KarasChan/internal/db"
)

type Repository interface {
	// CreateTx inserts the order and all of its items inside the
	// caller's transaction, filling in generated ids and timestamps.
	CreateTx(ctx context.Context, tx pgx.Tx, o *Order) error
	// GetByUser returns nil when the order does not exist or belongs
	// to another user; the two are indistinguishable.
	GetByUser(ctx context.Context, orderID int64, userID string) (*Order, error)
	// ListByUser filters on exactly the given status when non-nil;
	// orders in any other status are excluded.
	ListByUser(ctx context.Context, userID string, status *Status, limit, offset int) ([]Order, error)
	CountByUser(ctx context.Context, userID string, status *Status) (int, error)
	ListItems(ctx context.Context, orderID int64, limit, offset int) ([]Item, error)
	CountItems(ctx context.Context, orderID int64) (int, error)
}

type PostgresRepository struct {
	pool db.Pool
}

func NewPostgresRepository(pool db.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) CreateTx(ctx context.Context, tx pgx.Tx, o *Order) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO orders (cart_id, user_id, total_amount, fulfillment_status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, o.CartID, o.UserID, o.TotalAmount.StringFixed(2), string(o.Status)).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at
		`, o.ID, it.ProductID, it.Quantity, it.PriceAtPurchase.StringFixed(2)).
			Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, cart_id, user_id, total_amount::text, fulfillment_status, created_at, updated_at`

func (r *PostgresRepository) GetByUser(ctx context.Context, orderID int64, userID string) (*Order, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 AND user_id = $2`,
		orderID, userID,
	)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select order: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, status *Status, limit, offset int) ([]Order, error) {
	var rows pgx.Rows
	var err error
	if status != nil {
		rows, err = r.pool.Query(ctx,
			`SELECT `+orderColumns+` FROM orders
			 WHERE user_id = $1 AND fulfillment_status = $2
			 ORDER BY created_at ASC LIMIT $3 OFFSET $4`,
			userID, string(*status), limit, offset,
		)
	} else {
		rows, err = r.pool.Query(ctx,
			`SELECT `+orderColumns+` FROM orders
			 WHERE user_id = $1
			 ORDER BY created_at ASC LIMIT $2 OFFSET $3`,
			userID, limit, offset,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return orders, nil
}

func (r *PostgresRepository) CountByUser(ctx context.Context, userID string, status *Status) (int, error) {
	var total int
	var err error
	if status != nil {
		err = r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM orders WHERE user_id = $1 AND fulfillment_status = $2`,
			userID, string(*status),
		).Scan(&total)
	} else {
		err = r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM orders WHERE user_id = $1`,
			userID,
		).Scan(&total)
	}
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return total, nil
}

const itemColumns = `id, order_id, product_id, quantity, price_at_purchase::text, created_at, updated_at`

func (r *PostgresRepository) ListItems(ctx context.Context, orderID int64, limit, offset int) ([]Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+itemColumns+` FROM order_items WHERE order_id = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`,
		orderID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		var price string
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &price, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order_item: %w", err)
		}
		it.PriceAtPurchase, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse price %q: %w", price, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return items, nil
}

func (r *PostgresRepository) CountItems(ctx context.Context, orderID int64) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM order_items WHERE order_id = $1`, orderID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count order_items: %w", err)
	}
	return total, nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var total string
	if err := row.Scan(&o.ID, &o.CartID, &o.UserID, &total, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}

	parsed, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse total %q: %w", total, err)
	}
	o.TotalAmount = parsed
	return &o, nil
}
