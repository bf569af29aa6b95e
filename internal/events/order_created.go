package events

import (
	"time"

	"github.com/Al-Ghoul/KarasChan/internal/order"
)

const EventTypeOrderCreated = "OrderCreated"

// OrderCreated is published after a checkout commits. Amounts are
// fixed-point strings so consumers never touch floats.
type OrderCreated struct {
	EventType   string      `json:"eventType"`
	OrderID     int64       `json:"orderId"`
	CartID      int64       `json:"cartId"`
	UserID      string      `json:"userId"`
	Items       []OrderLine `json:"items"`
	TotalAmount string      `json:"totalAmount"`
	Timestamp   time.Time   `json:"timestamp"`
}

type OrderLine struct {
	ProductID       int64  `json:"productId"`
	Quantity        int    `json:"quantity"`
	PriceAtPurchase string `json:"priceAtPurchase"`
}

func newOrderCreated(o *order.Order, now time.Time) OrderCreated {
	ev := OrderCreated{
		EventType:   EventTypeOrderCreated,
		OrderID:     o.ID,
		CartID:      o.CartID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount.StringFixed(2),
		Timestamp:   now,
	}
	for _, it := range o.Items {
		ev.Items = append(ev.Items, OrderLine{
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			PriceAtPurchase: it.PriceAtPurchase.StringFixed(2),
		})
	}
	return ev
}
