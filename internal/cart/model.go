package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusCheckedOut Status = "checked_out"
	StatusArchived   Status = "archived"
)

type Cart struct {
	ID           int64      `json:"id"`
	UserID       string     `json:"userId"`
	Status       Status     `json:"status"`
	CheckedOutAt *time.Time `json:"checkedOutAt,omitempty"`
	ArchivedAt   *time.Time `json:"archivedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type Item struct {
	ID        int64     `json:"id"`
	CartID    int64     `json:"cartId"`
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CheckoutLine is a cart item joined with the owning product at
// checkout time. UnitPrice is the price snapshotted into the order;
// Stock is the availability the guard validates against.
type CheckoutLine struct {
	ItemID    int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
	Stock     int
}
