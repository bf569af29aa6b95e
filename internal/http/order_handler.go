package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Al-Ghoul/KarasChan/internal/checkout"
	"github.com/Al-Ghoul/KarasChan/internal/inventory"
	"github.com/Al-Ghoul/KarasChan/internal/order"
	"github.com/Al-Ghoul/KarasChan/internal/pagination"
)

type OrderHandler struct {
	checkout *checkout.Service
	orders   order.Repository
}

func NewOrderHandler(checkoutSvc *checkout.Service, orders order.Repository) *OrderHandler {
	return &OrderHandler{checkout: checkoutSvc, orders: orders}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	o, err := h.checkout.Checkout(ctx, userIDFrom(r))
	if err != nil {
		if errors.Is(err, checkout.ErrNothingToCheckout) {
			writeError(w, http.StatusNotFound, "Cart is empty or does not exist")
			return
		}
		var insufficient *inventory.InsufficientStockError
		if errors.As(err, &insufficient) {
			writeError(w, http.StatusBadRequest, "Insufficient stock for the requested quantity")
			return
		}
		writeStorageError(w)
		return
	}

	writeSuccess(w, http.StatusCreated, "Order created successfully", o)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	params, fields := pagination.ParseQuery(r.URL.Query())
	if fields == nil {
		fields = map[string]string{}
	}

	var status *order.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := order.Status(raw)
		if !s.Valid() {
			fields["status"] = "must be one of pending, processing, shipped, delivered, cancelled"
		} else {
			status = &s
		}
	}
	if len(fields) > 0 {
		writeValidationErrors(w, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := userIDFrom(r)
	orders, err := h.orders.ListByUser(ctx, userID, status, params.FetchLimit(), params.Offset)
	if err != nil {
		writeStorageError(w)
		return
	}
	total, err := h.orders.CountByUser(ctx, userID, status)
	if err != nil {
		writeStorageError(w)
		return
	}

	page, meta := pagination.Window(orders, params, total)
	if len(page) == 0 {
		writeError(w, http.StatusNotFound, "No orders found")
		return
	}

	writePage(w, "Orders retrieved successfully", page, meta)
}

func (h *OrderHandler) ListOrderItems(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseID(chi.URLParam(r, "orderID"))
	if !ok {
		writeValidationErrors(w, map[string]string{"id": "must be a positive integer"})
		return
	}

	params, fields := pagination.ParseQuery(r.URL.Query())
	if fields != nil {
		writeValidationErrors(w, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Ownership gate: a foreign order and a missing order give the
	// same answer.
	o, err := h.orders.GetByUser(ctx, orderID, userIDFrom(r))
	if err != nil {
		writeStorageError(w)
		return
	}
	if o == nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	items, err := h.orders.ListItems(ctx, o.ID, params.FetchLimit(), params.Offset)
	if err != nil {
		writeStorageError(w)
		return
	}
	total, err := h.orders.CountItems(ctx, o.ID)
	if err != nil {
		writeStorageError(w)
		return
	}

	page, meta := pagination.Window(items, params, total)
	writePage(w, "Order items retrieved successfully", page, meta)
}
