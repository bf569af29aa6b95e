// Package inventory validates requested quantities against product
// stock. It never mutates anything: stock is checked when an item
// enters a cart and again at checkout, not reserved in between.
package inventory

import "fmt"

// Line is a requested quantity paired with the availability it is
// judged against.
type Line struct {
	ProductID int64
	Requested int
	Available int
}

// InsufficientStockError reports a single line that failed validation.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// Check rejects a line whose requested quantity exceeds availability.
// Requesting exactly the available quantity passes.
func Check(l Line) error {
	if l.Requested > l.Available {
		return &InsufficientStockError{
			ProductID: l.ProductID,
			Requested: l.Requested,
			Available: l.Available,
		}
	}
	return nil
}

// CheckAll validates every line and reports the first failure.
func CheckAll(lines []Line) error {
	for _, l := range lines {
		if err := Check(l); err != nil {
			return err
		}
	}
	return nil
}
