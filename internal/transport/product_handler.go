package transport

import (
	"errors"
	"net/http"
	"time"

	"cerveceria-pos/internal/domain"
	"cerveceria-pos/internal/middleware"
	"cerveceria-pos/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// expiresAtLayout is the date format the brewery forms use.
const expiresAtLayout = "02/01/2006"

// CreateProductRequest represents the product registration payload
type CreateProductRequest struct {
	Name            string `json:"name" validate:"required"`
	Measure         string `json:"measure" validate:"required,measure"`
	ExpiresAt       string `json:"expires_at" validate:"required"`
	ProductionPrice int64  `json:"production_price" validate:"gte=0"`
	SalePrice       int64  `json:"sale_price" validate:"gte=0"`
}

// UpdateProductNameRequest represents the rename payload
type UpdateProductNameRequest struct {
	Name string `json:"name" validate:"required"`
}

// ProductHandler handles HTTP requests for catalog operations
type ProductHandler struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products repository.ProductRepository, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}/name", h.UpdateName)
		r.Delete("/{id}", h.Delete)
	})
}

// Create handles product registration
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expiresAt, err := time.Parse(expiresAtLayout, req.ExpiresAt)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "expires_at must be a DD/MM/YYYY date")
		return
	}

	product := &domain.Product{
		Name:            req.Name,
		Measure:         req.Measure,
		ExpiresAt:       expiresAt,
		ProductionPrice: req.ProductionPrice,
		SalePrice:       req.SalePrice,
	}

	if err := h.products.Create(r.Context(), product); err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// List returns the full catalog
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get returns a single product
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.products.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// UpdateName handles product renaming
func (h *ProductHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req UpdateProductNameRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.products.UpdateName(r.Context(), id, req.Name); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to rename product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to rename product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a product from the catalog
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
