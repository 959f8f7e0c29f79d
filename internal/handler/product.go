package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/storefront-api/internal/apperror"
	"github.com/sakif/storefront-api/internal/model"
)

// ProductQuerier is the read side of the catalog.
// *service.ProductService implements it.
type ProductQuerier interface {
	List(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, rawID string) (*model.Product, error)
	Search(ctx context.Context, term string) ([]model.Product, error)
}

// ProductHandler serves the read-only /products endpoints.
type ProductHandler struct {
	products ProductQuerier
	logger   *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(products ProductQuerier, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// HandleList returns every product.
//
// HTTP: GET /products
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.logger.Error("list products failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Error fetching products")
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// HandleSearch returns products whose title, description or category
// contains the q parameter. A missing or empty q returns everything.
//
// HTTP: GET /products/search?q=shirt
func (h *ProductHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	products, err := h.products.Search(r.Context(), term)
	if err != nil {
		h.logger.Error("search products failed",
			slog.String("term", term),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "Error searching products")
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// HandleGetByID returns one product.
//
// HTTP: GET /products/{id}
//
// Unknown and malformed ids both answer 404; only a failing query is a 500.
func (h *ProductHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Error("get product failed",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "Error fetching product")
		return
	}

	writeJSON(w, http.StatusOK, product)
}
