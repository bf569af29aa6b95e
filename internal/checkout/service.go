// Package checkout converts a user's active cart into an order. The
// order insert, the order-item inserts and the cart retirement happen
// in one transaction: readers either see the cart still active or the
// complete order, never anything in between.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Al-Ghoul/KarasChan/internal/cart"
	"github.com/Al-Ghoul/KarasChan/internal/db"
	"github.com/Al-Ghoul/KarasChan/internal/inventory"
	"github.com/Al-Ghoul/KarasChan/internal/order"
)

// ErrNothingToCheckout covers both "no active cart" and "active cart
// with no items"; callers cannot tell them apart.
var ErrNothingToCheckout = errors.New("nothing to check out")

// OrderEventsPublisher emits the order-created event after a checkout
// commits. Implementations must not block checkout on broker trouble.
type OrderEventsPublisher interface {
	PublishOrderCreated(ctx context.Context, o *order.Order) error
}

type Service struct {
	pool      db.Pool
	carts     cart.Repository
	orders    order.Repository
	publisher OrderEventsPublisher
	logger    *log.Logger
}

func NewService(pool db.Pool, carts cart.Repository, orders order.Repository, publisher OrderEventsPublisher, logger *log.Logger) *Service {
	return &Service{
		pool:      pool,
		carts:     carts,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
	}
}

// Checkout runs the cart-to-order conversion for userID.
//
//  1. the active cart's items are fetched joined with current prices
//  2. every line is validated against current stock
//  3. the total is summed with decimal arithmetic
//  4. order + order_items + cart retirement commit atomically
//
// The unit price observed in step 1 is snapshotted into each order
// item; later product price changes never touch the order.
func (s *Service) Checkout(ctx context.Context, userID string) (*order.Order, error) {
	cartID, lines, err := s.carts.ItemsForCheckout(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load checkout lines: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrNothingToCheckout
	}

	guarded := make([]inventory.Line, 0, len(lines))
	for _, l := range lines {
		guarded = append(guarded, inventory.Line{
			ProductID: l.ProductID,
			Requested: l.Quantity,
			Available: l.Stock,
		})
	}
	if err := inventory.CheckAll(guarded); err != nil {
		return nil, err
	}

	total := decimal.Zero
	items := make([]order.Item, 0, len(lines))
	for _, l := range lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
		items = append(items, order.Item{
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			PriceAtPurchase: l.UnitPrice,
		})
	}

	o := &order.Order{
		CartID:      cartID,
		UserID:      userID,
		TotalAmount: total,
		Status:      order.StatusPending,
		Items:       items,
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.orders.CreateTx(ctx, tx, o); err != nil {
		return nil, err
	}
	if err := s.carts.RetireTx(ctx, tx, cartID, cart.StatusCheckedOut); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, o); err != nil {
			s.logger.Printf("publish order created %d: %v", o.ID, err)
		}
	}

	return o, nil
}
