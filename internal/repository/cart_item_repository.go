package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cerveceria-pos/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrDuplicateCartItem = errors.New("customer already has this product in the cart")
	ErrCartItemNotFound  = errors.New("cart item not found")
)

// uniqueViolation is the SQLSTATE class for unique constraint violations.
const uniqueViolation = "23505"

// CartItemRepository defines the interface for cart line ("venta") data
// access. Duplicate prevention for a (customer, product) pair is enforced by
// a unique constraint, so Insert is an atomic insert-if-absent.
type CartItemRepository interface {
	Insert(ctx context.Context, item *domain.CartItem) error
	FindByCustomerAndProduct(ctx context.Context, customerID, productID int64) (*domain.CartItem, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.CartItem, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteByCustomer(ctx context.Context, customerID int64) error
}

type cartItemRepository struct {
	db *sql.DB
}

// NewCartItemRepository creates a new instance of CartItemRepository
func NewCartItemRepository(db *sql.DB) CartItemRepository {
	return &cartItemRepository{db: db}
}

// Insert adds a new cart line and fills in the generated id. It returns
// ErrDuplicateCartItem without mutating the store when the customer already
// has a line for the same product.
func (r *cartItemRepository) Insert(ctx context.Context, item *domain.CartItem) error {
	query := `
		INSERT INTO cart_items (added_at, product_id, customer_id, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		item.AddedAt,
		item.ProductID,
		item.CustomerID,
		item.Quantity,
	).Scan(&item.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateCartItem
		}
		return fmt.Errorf("failed to insert cart item: %w", err)
	}

	return nil
}

// FindByCustomerAndProduct retrieves the cart line a customer holds for a
// given product, or ErrCartItemNotFound when the pair is absent.
func (r *cartItemRepository) FindByCustomerAndProduct(ctx context.Context, customerID, productID int64) (*domain.CartItem, error) {
	query := `
		SELECT id, added_at, product_id, customer_id, quantity
		FROM cart_items
		WHERE customer_id = $1 AND product_id = $2
	`

	item := &domain.CartItem{}
	err := r.db.QueryRowContext(ctx, query, customerID, productID).Scan(
		&item.ID,
		&item.AddedAt,
		&item.ProductID,
		&item.CustomerID,
		&item.Quantity,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}

	return item, nil
}

// ListByCustomer retrieves a customer's cart lines in insertion order. An
// empty cart yields an empty slice, not an error; customer existence is not
// checked here.
func (r *cartItemRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.CartItem, error) {
	query := `
		SELECT id, added_at, product_id, customer_id, quantity
		FROM cart_items
		WHERE customer_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		err := rows.Scan(
			&item.ID,
			&item.AddedAt,
			&item.ProductID,
			&item.CustomerID,
			&item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// Delete removes a single cart line. The boolean reports whether a row was
// actually deleted; a missing row is not an error.
func (r *cartItemRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM cart_items WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// DeleteByCustomer empties a customer's cart. Deleting an already-empty cart
// succeeds.
func (r *cartItemRepository) DeleteByCustomer(ctx context.Context, customerID int64) error {
	query := `DELETE FROM cart_items WHERE customer_id = $1`

	if _, err := r.db.ExecContext(ctx, query, customerID); err != nil {
		return fmt.Errorf("failed to reset cart: %w", err)
	}

	return nil
}
