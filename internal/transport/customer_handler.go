package transport

import (
	"errors"
	"net/http"

	"cerveceria-pos/internal/domain"
	"cerveceria-pos/internal/middleware"
	"cerveceria-pos/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateCustomerRequest represents the customer registration payload
type CreateCustomerRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Address   string `json:"address" validate:"required"`
	Phone     int64  `json:"phone" validate:"gte=0"`
	Email     string `json:"email" validate:"required,email"`
}

// UpdateAddressRequest represents the address change payload
type UpdateAddressRequest struct {
	Address string `json:"address" validate:"required"`
}

// CustomerHandler handles HTTP requests for the customer registry
type CustomerHandler struct {
	customers repository.CustomerRepository
	logger    *zap.Logger
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customers repository.CustomerRepository, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		logger:    logger,
	}
}

// RegisterRoutes registers all customer registry routes
func (h *CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/customers", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}/address", h.UpdateAddress)
	})
}

// Create handles customer registration
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer := &domain.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
	}

	if err := h.customers.Create(r.Context(), customer); err != nil {
		h.logger.Error("Failed to create customer", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create customer")
		return
	}

	h.logger.Info("Customer created", zap.Int64("customer_id", customer.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, customer)
}

// List returns all registered customers
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list customers", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list customers")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, customers)
}

// Get returns a single customer's details
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	customer, err := h.customers.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "customer not found")
			return
		}
		h.logger.Error("Failed to get customer", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get customer")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, customer)
}

// UpdateAddress handles address changes
func (h *CustomerHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	var req UpdateAddressRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.customers.UpdateAddress(r.Context(), id, req.Address); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "customer not found")
			return
		}
		h.logger.Error("Failed to update customer address", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update address")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
