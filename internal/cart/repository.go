package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/Al-Ghoul/KarasChan/internal/db"
)

// ErrActiveCartExists is returned when an insert trips the partial
// unique index on carts(user_id) WHERE status='active'. The index is
// the source of truth for the one-active-cart-per-user invariant, so
// concurrent creates cannot both succeed.
var ErrActiveCartExists = errors.New("active cart already exists")

type Repository interface {
	GetActiveCart(ctx context.Context, userID string) (*Cart, error)
	CreateCart(ctx context.Context, userID string) (*Cart, error)
	AddItem(ctx context.Context, cartID, productID int64, quantity int) (*Item, error)
	GetItem(ctx context.Context, cartID, itemID int64) (*Item, error)
	ListItems(ctx context.Context, cartID int64, limit, offset int) ([]Item, error)
	CountItems(ctx context.Context, cartID int64) (int, error)
	DeleteItem(ctx context.Context, cartID, itemID int64) (*Item, error)
	UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) (*Item, error)
	ItemsForCheckout(ctx context.Context, userID string) (int64, []CheckoutLine, error)
	RetireTx(ctx context.Context, tx pgx.Tx, cartID int64, status Status) error
}

type PostgresRepository struct {
	pool db.Pool
}

func NewPostgresRepository(pool db.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const cartColumns = `id, user_id, status, checked_out_at, archived_at, created_at, updated_at`

func (r *PostgresRepository) GetActiveCart(ctx context.Context, userID string) (*Cart, error) {
	var c Cart
	row := r.pool.QueryRow(ctx,
		`SELECT `+cartColumns+` FROM carts WHERE user_id = $1 AND status = 'active'`,
		userID,
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.Status, &c.CheckedOutAt, &c.ArchivedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// caller (handler) can turn this into 404
			return nil, nil
		}
		return nil, fmt.Errorf("select active cart: %w", err)
	}
	return &c, nil
}

func (r *PostgresRepository) CreateCart(ctx context.Context, userID string) (*Cart, error) {
	var c Cart
	row := r.pool.QueryRow(ctx,
		`INSERT INTO carts (user_id, status) VALUES ($1, 'active') RETURNING `+cartColumns,
		userID,
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.Status, &c.CheckedOutAt, &c.ArchivedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == db.UniqueViolation {
			return nil, ErrActiveCartExists
		}
		return nil, fmt.Errorf("insert cart: %w", err)
	}
	return &c, nil
}

const itemColumns = `id, cart_id, product_id, quantity, created_at, updated_at`

func (r *PostgresRepository) AddItem(ctx context.Context, cartID, productID int64, quantity int) (*Item, error) {
	var it Item
	row := r.pool.QueryRow(ctx,
		`INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3) RETURNING `+itemColumns,
		cartID, productID, quantity,
	)
	if err := scanItem(row, &it); err != nil {
		return nil, fmt.Errorf("insert cart_item: %w", err)
	}
	return &it, nil
}

func (r *PostgresRepository) GetItem(ctx context.Context, cartID, itemID int64) (*Item, error) {
	var it Item
	row := r.pool.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM cart_items WHERE id = $1 AND cart_id = $2`,
		itemID, cartID,
	)
	if err := scanItem(row, &it); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select cart_item: %w", err)
	}
	return &it, nil
}

func (r *PostgresRepository) ListItems(ctx context.Context, cartID int64, limit, offset int) ([]Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+itemColumns+` FROM cart_items WHERE cart_id = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`,
		cartID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("select cart_items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := scanItem(rows, &it); err != nil {
			return nil, fmt.Errorf("scan cart_item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return items, nil
}

func (r *PostgresRepository) CountItems(ctx context.Context, cartID int64) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM cart_items WHERE cart_id = $1`, cartID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count cart_items: %w", err)
	}
	return total, nil
}

// DeleteItem removes an item and returns it, or nil when no row
// matched. A missing item and an item owned by another cart are
// indistinguishable on purpose.
func (r *PostgresRepository) DeleteItem(ctx context.Context, cartID, itemID int64) (*Item, error) {
	var it Item
	row := r.pool.QueryRow(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND cart_id = $2 RETURNING `+itemColumns,
		itemID, cartID,
	)
	if err := scanItem(row, &it); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete cart_item: %w", err)
	}
	return &it, nil
}

// UpdateItemQuantity sets the absolute quantity of an item. Stock must
// have been validated against the new quantity before calling. Returns
// nil with the same merged not-found/not-owned semantics as DeleteItem.
func (r *PostgresRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) (*Item, error) {
	var it Item
	row := r.pool.QueryRow(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = now() WHERE id = $1 AND cart_id = $2 RETURNING `+itemColumns,
		itemID, cartID, quantity,
	)
	if err := scanItem(row, &it); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update cart_item: %w", err)
	}
	return &it, nil
}

// ItemsForCheckout returns the active cart's id and its items joined
// with the current product price and stock, oldest first. No active
// cart and an empty active cart both come back as zero lines.
func (r *PostgresRepository) ItemsForCheckout(ctx context.Context, userID string) (int64, []CheckoutLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, ci.id, ci.product_id, ci.quantity, p.price::text, p.stock
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		JOIN products p ON p.id = ci.product_id
		WHERE c.user_id = $1 AND c.status = 'active'
		ORDER BY ci.created_at ASC
	`, userID)
	if err != nil {
		return 0, nil, fmt.Errorf("select checkout lines: %w", err)
	}
	defer rows.Close()

	var cartID int64
	var lines []CheckoutLine
	for rows.Next() {
		var line CheckoutLine
		var price string
		if err := rows.Scan(&cartID, &line.ItemID, &line.ProductID, &line.Quantity, &price, &line.Stock); err != nil {
			return 0, nil, fmt.Errorf("scan checkout line: %w", err)
		}
		line.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return 0, nil, fmt.Errorf("parse price %q: %w", price, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("rows: %w", err)
	}

	return cartID, lines, nil
}

// RetireTx moves a cart out of the active state inside the caller's
// transaction, stamping the matching timestamp column.
func (r *PostgresRepository) RetireTx(ctx context.Context, tx pgx.Tx, cartID int64, status Status) error {
	tag, err := tx.Exec(ctx, `
		UPDATE carts
		SET status = $2,
		    checked_out_at = CASE WHEN $2 = 'checked_out' THEN now() ELSE checked_out_at END,
		    archived_at = CASE WHEN $2 = 'archived' THEN now() ELSE archived_at END,
		    updated_at = now()
		WHERE id = $1
	`, cartID, string(status))
	if err != nil {
		return fmt.Errorf("retire cart: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("retire cart: cart %d not found", cartID)
	}
	return nil
}

func scanItem(row pgx.Row, it *Item) error {
	return row.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt)
}
