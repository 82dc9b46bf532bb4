package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cerveceria-pos/internal/domain"
	"cerveceria-pos/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// CartService owns the business rules for a customer's pending sales. A
// repeated add for the same (customer, product) pair is rejected rather than
// interpreted as "set" or "increment"; the caller removes the existing line
// first if the quantity must change.
type CartService interface {
	AddItem(ctx context.Context, customerID, productID int64, quantity int, at time.Time) (*domain.CartItem, error)
	ListItems(ctx context.Context, customerID int64) ([]domain.CartItem, error)
	RemoveItem(ctx context.Context, cartItemID int64) (bool, error)
	ResetCart(ctx context.Context, customerID int64) error
}

type cartService struct {
	cartItems repository.CartItemRepository
	logger    *zap.Logger
}

// NewCartService creates a new instance of CartService
func NewCartService(cartItems repository.CartItemRepository, logger *zap.Logger) CartService {
	return &cartService{
		cartItems: cartItems,
		logger:    logger,
	}
}

// AddItem registers a pending sale for a customer. Duplicate prevention is
// atomic: the storage layer's unique constraint on (customer, product) is the
// rejection signal, so concurrent adds cannot both slip through.
func (s *cartService) AddItem(ctx context.Context, customerID, productID int64, quantity int, at time.Time) (*domain.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item := &domain.CartItem{
		AddedAt:    at,
		ProductID:  productID,
		CustomerID: customerID,
		Quantity:   quantity,
	}

	if err := s.cartItems.Insert(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicateCartItem) {
			s.logger.Debug("Rejected duplicate cart item",
				zap.Int64("customer_id", customerID),
				zap.Int64("product_id", productID),
			)
			return nil, err
		}
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	s.logger.Info("Cart item added",
		zap.Int64("cart_item_id", item.ID),
		zap.Int64("customer_id", customerID),
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity),
	)

	return item, nil
}

// ListItems returns the customer's cart in storage order. An empty slice
// means an empty cart; customer existence is not validated here.
func (s *cartService) ListItems(ctx context.Context, customerID int64) ([]domain.CartItem, error) {
	items, err := s.cartItems.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}

// RemoveItem deletes a single cart line. False means the line did not exist,
// which is not an error.
func (s *cartService) RemoveItem(ctx context.Context, cartItemID int64) (bool, error) {
	deleted, err := s.cartItems.Delete(ctx, cartItemID)
	if err != nil {
		return false, fmt.Errorf("failed to remove cart item: %w", err)
	}

	if deleted {
		s.logger.Info("Cart item removed", zap.Int64("cart_item_id", cartItemID))
	}

	return deleted, nil
}

// ResetCart deletes every cart line of the customer. Resetting an empty cart
// succeeds.
func (s *cartService) ResetCart(ctx context.Context, customerID int64) error {
	if err := s.cartItems.DeleteByCustomer(ctx, customerID); err != nil {
		return fmt.Errorf("failed to reset cart: %w", err)
	}

	s.logger.Info("Cart reset", zap.Int64("customer_id", customerID))
	return nil
}
