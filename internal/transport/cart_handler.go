package transport

import (
	"errors"
	"net/http"
	"time"

	"cerveceria-pos/internal/middleware"
	"cerveceria-pos/internal/repository"
	"cerveceria-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddCartItemRequest represents the add-to-cart payload
type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// CartHandler handles HTTP requests for pending sales
type CartHandler struct {
	cart   service.CartService
	logger *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cart service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cart:   cart,
		logger: logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/customers/{id}/cart", func(r chi.Router) {
		r.Post("/", h.AddItem)
		r.Get("/", h.ListItems)
		r.Delete("/", h.ResetCart)
	})
	r.Delete("/api/cart-items/{id}", h.RemoveItem)
}

// AddItem registers a pending sale for the customer. A repeated add for the
// same product answers 409 and leaves the existing line untouched.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseIDParam(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	var req AddCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.cart.AddItem(r.Context(), customerID, req.ProductID, req.Quantity, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateCartItem):
			middleware.RespondWithError(w, http.StatusConflict,
				"product already in cart; remove the existing item to change its quantity")
		case errors.Is(err, service.ErrInvalidQuantity):
			middleware.RespondWithError(w, http.StatusBadRequest, "quantity must be a positive integer")
		default:
			h.logger.Error("Failed to add cart item", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add cart item")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, item)
}

// ListItems returns the customer's pending sales in insertion order
func (h *CartHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseIDParam(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	items, err := h.cart.ListItems(r.Context(), customerID)
	if err != nil {
		h.logger.Error("Failed to list cart items", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list cart items")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, items)
}

// ResetCart removes every pending sale of the customer
func (h *CartHandler) ResetCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseIDParam(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	if err := h.cart.ResetCart(r.Context(), customerID); err != nil {
		h.logger.Error("Failed to reset cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to reset cart")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveItem deletes a single pending sale by its id
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartItemID, ok := parseIDParam(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid cart item id")
		return
	}

	deleted, err := h.cart.RemoveItem(r.Context(), cartItemID)
	if err != nil {
		h.logger.Error("Failed to remove cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove cart item")
		return
	}

	if !deleted {
		middleware.RespondWithError(w, http.StatusNotFound, "cart item not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
