package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Al-Ghoul/KarasChan/internal/cart"
	"github.com/Al-Ghoul/KarasChan/internal/catalog"
	"github.com/Al-Ghoul/KarasChan/internal/inventory"
	"github.com/Al-Ghoul/KarasChan/internal/pagination"
)

type CartHandler struct {
	carts    cart.Repository
	products catalog.Repository
}

func NewCartHandler(carts cart.Repository, products catalog.Repository) *CartHandler {
	return &CartHandler{carts: carts, products: products}
}

func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.carts.CreateCart(ctx, userIDFrom(r))
	if err != nil {
		if errors.Is(err, cart.ErrActiveCartExists) {
			writeError(w, http.StatusConflict, "Cart already exists")
			return
		}
		writeStorageError(w)
		return
	}

	writeSuccess(w, http.StatusCreated, "Cart created successfully", c)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.carts.GetActiveCart(ctx, userIDFrom(r))
	if err != nil {
		writeStorageError(w)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "Cart not found")
		return
	}

	writeSuccess(w, http.StatusOK, "Cart retrieved successfully", c)
}

func (h *CartHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	params, fields := pagination.ParseQuery(r.URL.Query())
	if fields != nil {
		writeValidationErrors(w, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c, err := h.carts.GetActiveCart(ctx, userIDFrom(r))
	if err != nil {
		writeStorageError(w)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "Cart not found")
		return
	}

	items, err := h.carts.ListItems(ctx, c.ID, params.FetchLimit(), params.Offset)
	if err != nil {
		writeStorageError(w)
		return
	}
	total, err := h.carts.CountItems(ctx, c.ID)
	if err != nil {
		writeStorageError(w)
		return
	}

	page, meta := pagination.Window(items, params, total)
	writePage(w, "Cart items retrieved successfully", page, meta)
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	fields := map[string]string{}
	if body.ProductID <= 0 {
		fields["productId"] = "must be a positive integer"
	}
	if body.Quantity <= 0 {
		fields["quantity"] = "must be a positive integer"
	}
	if len(fields) > 0 {
		writeValidationErrors(w, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c, err := h.carts.GetActiveCart(ctx, userIDFrom(r))
	if err != nil {
		writeStorageError(w)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "Cart not found")
		return
	}

	p, err := h.products.Get(ctx, body.ProductID)
	if err != nil {
		writeStorageError(w)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := inventory.Check(inventory.Line{ProductID: p.ID, Requested: body.Quantity, Available: p.Stock}); err != nil {
		writeError(w, http.StatusBadRequest, "Insufficient stock for the requested quantity")
		return
	}

	item, err := h.carts.AddItem(ctx, c.ID, body.ProductID, body.Quantity)
	if err != nil {
		writeStorageError(w)
		return
	}

	writeSuccess(w, http.StatusCreated, "Item added successfully", item)
}

func (h *CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := parseID(chi.URLParam(r, "itemID"))
	if !ok {
		writeValidationErrors(w, map[string]string{"id": "must be a positive integer"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.carts.GetActiveCart(ctx, userIDFrom(r))
	if err != nil {
		writeStorageError(w)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "Cart not found")
		return
	}

	item, err := h.carts.DeleteItem(ctx, c.ID, itemID)
	if err != nil {
		writeStorageError(w)
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}

	writeSuccess(w, http.StatusOK, "Item deleted successfully", item)
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := parseID(chi.URLParam(r, "itemID"))
	if !ok {
		writeValidationErrors(w, map[string]string{"id": "must be a positive integer"})
		return
	}

	var body updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if body.Quantity <= 0 {
		writeValidationErrors(w, map[string]string{"quantity": "must be a positive integer"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c, err := h.carts.GetActiveCart(ctx, userIDFrom(r))
	if err != nil {
		writeStorageError(w)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "Cart not found")
		return
	}

	item, err := h.carts.GetItem(ctx, c.ID, itemID)
	if err != nil {
		writeStorageError(w)
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}

	p, err := h.products.Get(ctx, item.ProductID)
	if err != nil {
		writeStorageError(w)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	// The new absolute quantity is what gets validated, not the delta
	// from the current quantity.
	if err := inventory.Check(inventory.Line{ProductID: p.ID, Requested: body.Quantity, Available: p.Stock}); err != nil {
		writeError(w, http.StatusBadRequest, "Insufficient stock for the requested quantity")
		return
	}

	item, err = h.carts.UpdateItemQuantity(ctx, c.ID, itemID, body.Quantity)
	if err != nil {
		writeStorageError(w)
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}

	writeSuccess(w, http.StatusOK, "Item updated successfully", item)
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
