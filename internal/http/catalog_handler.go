package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Al-Ghoul/KarasChan/internal/catalog"
	"github.com/Al-Ghoul/KarasChan/internal/pagination"
)

type CatalogHandler struct {
	products catalog.Repository
}

func NewCatalogHandler(products catalog.Repository) *CatalogHandler {
	return &CatalogHandler{products: products}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params, fields := pagination.ParseQuery(r.URL.Query())
	if fields != nil {
		writeValidationErrors(w, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	products, err := h.products.List(ctx, params.FetchLimit(), params.Offset)
	if err != nil {
		writeStorageError(w)
		return
	}
	total, err := h.products.Count(ctx)
	if err != nil {
		writeStorageError(w)
		return
	}

	page, meta := pagination.Window(products, params, total)
	writePage(w, "Products retrieved successfully", page, meta)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseID(chi.URLParam(r, "productID"))
	if !ok {
		writeValidationErrors(w, map[string]string{"id": "must be a positive integer"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.products.Get(ctx, productID)
	if err != nil {
		writeStorageError(w)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	writeSuccess(w, http.StatusOK, "Product retrieved successfully", p)
}
