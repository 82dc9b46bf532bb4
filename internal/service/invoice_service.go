package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"cerveceria-pos/internal/domain"
	"cerveceria-pos/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MissingProductPolicy decides what BuildInvoice does when a cart line
// references a product that no longer exists in the catalog.
type MissingProductPolicy string

const (
	// MissingProductSkip drops the line from the invoice; it contributes
	// nothing to the total.
	MissingProductSkip MissingProductPolicy = "skip"

	// MissingProductFail aborts the build with ErrMissingProduct.
	MissingProductFail MissingProductPolicy = "fail"
)

var (
	ErrMissingProduct = errors.New("cart references a product that no longer exists")
)

// invoiceSuffixDigits is the number of random decimal digits appended to an
// invoice number.
const invoiceSuffixDigits = 10

// InvoiceService builds the transient invoice aggregate for a customer's
// cart. Building an invoice does not clear the cart; that is a separate,
// explicit CartService.ResetCart call.
type InvoiceService interface {
	BuildInvoice(ctx context.Context, customerID int64) (*domain.Invoice, error)
}

type invoiceService struct {
	customers repository.CustomerRepository
	products  repository.ProductRepository
	cartItems repository.CartItemRepository
	policy    MissingProductPolicy
	now       func() time.Time
	logger    *zap.Logger
}

// NewInvoiceService creates a new instance of InvoiceService. An unknown
// policy falls back to MissingProductSkip.
func NewInvoiceService(
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	cartItems repository.CartItemRepository,
	policy MissingProductPolicy,
	logger *zap.Logger,
) InvoiceService {
	if policy != MissingProductFail {
		policy = MissingProductSkip
	}

	return &invoiceService{
		customers: customers,
		products:  products,
		cartItems: cartItems,
		policy:    policy,
		now:       time.Now,
		logger:    logger,
	}
}

// BuildInvoice assembles the customer snapshot, the aggregated product lines
// and the grand total, and mints a fresh invoice number. A missing customer
// leaves the snapshot nil rather than failing; an empty cart yields a
// zero-total invoice.
func (s *invoiceService) BuildInvoice(ctx context.Context, customerID int64) (*domain.Invoice, error) {
	issuedAt := s.now()

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, fmt.Errorf("failed to load customer: %w", err)
		}
		s.logger.Warn("Building invoice without customer snapshot",
			zap.Int64("customer_id", customerID),
		)
		customer = nil
	}

	items, err := s.cartItems.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}

	lines := make(map[int64]domain.InvoiceLine, len(items))
	var total int64

	for _, item := range items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if !errors.Is(err, repository.ErrProductNotFound) {
				return nil, fmt.Errorf("failed to load product %d: %w", item.ProductID, err)
			}

			if s.policy == MissingProductFail {
				return nil, fmt.Errorf("%w: product %d", ErrMissingProduct, item.ProductID)
			}

			s.logger.Warn("Skipping cart item for missing product",
				zap.Int64("cart_item_id", item.ID),
				zap.Int64("product_id", item.ProductID),
			)
			continue
		}

		lineTotal := product.SalePrice * int64(item.Quantity)
		lines[item.ProductID] = domain.InvoiceLine{
			ProductName: product.Name,
			UnitPrice:   product.SalePrice,
			Quantity:    item.Quantity,
			AddedAt:     item.AddedAt,
			Total:       lineTotal,
		}
		total += lineTotal
	}

	invoice := &domain.Invoice{
		Number:   s.invoiceNumber(customerID, issuedAt),
		IssuedAt: issuedAt,
		Customer: customer,
		Lines:    lines,
		Total:    total,
	}

	s.logger.Info("Invoice built",
		zap.String("invoice_number", invoice.Number),
		zap.Int64("customer_id", customerID),
		zap.Int("line_count", len(lines)),
		zap.Int64("total", total),
	)

	return invoice, nil
}

// invoiceNumber concatenates the build timestamp, the customer id and the
// first decimal digits of a random 128-bit identifier. Uniqueness is
// probabilistic; no sequence is maintained.
func (s *invoiceService) invoiceNumber(customerID int64, at time.Time) string {
	u := uuid.New()
	digits := new(big.Int).SetBytes(u[:]).String()
	if len(digits) > invoiceSuffixDigits {
		digits = digits[:invoiceSuffixDigits]
	}

	return fmt.Sprintf("%s%d%s", at.Format("20060102150405"), customerID, digits)
}
