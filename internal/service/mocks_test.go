package service

import (
	"context"
	"sort"

	"cerveceria-pos/internal/domain"
	"cerveceria-pos/internal/repository"
)

// In-memory repositories for testing

type mockProductRepository struct {
	nextID   int64
	products map[int64]domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[int64]domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID == 0 {
		m.nextID++
		product.ID = m.nextID
	}
	m.products[product.ID] = *product
	return nil
}

func (m *mockProductRepository) UpdateName(ctx context.Context, id int64, name string) error {
	product, exists := m.products[id]
	if !exists {
		return repository.ErrProductNotFound
	}
	product.Name = name
	m.products[id] = product
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.products[id]; !exists {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	return &product, nil
}

func (m *mockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	ids := make([]int64, 0, len(m.products))
	for id := range m.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	products := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		product := m.products[id]
		products = append(products, &product)
	}
	return products, nil
}

type mockCustomerRepository struct {
	nextID    int64
	customers map[int64]domain.Customer
}

func newMockCustomerRepository() *mockCustomerRepository {
	return &mockCustomerRepository{customers: make(map[int64]domain.Customer)}
}

func (m *mockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if customer.ID == 0 {
		m.nextID++
		customer.ID = m.nextID
	}
	m.customers[customer.ID] = *customer
	return nil
}

func (m *mockCustomerRepository) UpdateAddress(ctx context.Context, id int64, address string) error {
	customer, exists := m.customers[id]
	if !exists {
		return repository.ErrCustomerNotFound
	}
	customer.Address = address
	m.customers[id] = customer
	return nil
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	customer, exists := m.customers[id]
	if !exists {
		return nil, repository.ErrCustomerNotFound
	}
	return &customer, nil
}

func (m *mockCustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	ids := make([]int64, 0, len(m.customers))
	for id := range m.customers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	customers := make([]*domain.Customer, 0, len(ids))
	for _, id := range ids {
		customer := m.customers[id]
		customers = append(customers, &customer)
	}
	return customers, nil
}

type mockCartItemRepository struct {
	nextID int64
	items  map[int64]domain.CartItem
}

func newMockCartItemRepository() *mockCartItemRepository {
	return &mockCartItemRepository{items: make(map[int64]domain.CartItem)}
}

func (m *mockCartItemRepository) Insert(ctx context.Context, item *domain.CartItem) error {
	// Mirrors the unique constraint on (customer_id, product_id)
	for _, existing := range m.items {
		if existing.CustomerID == item.CustomerID && existing.ProductID == item.ProductID {
			return repository.ErrDuplicateCartItem
		}
	}

	m.nextID++
	item.ID = m.nextID
	m.items[item.ID] = *item
	return nil
}

func (m *mockCartItemRepository) FindByCustomerAndProduct(ctx context.Context, customerID, productID int64) (*domain.CartItem, error) {
	for _, item := range m.items {
		if item.CustomerID == customerID && item.ProductID == productID {
			found := item
			return &found, nil
		}
	}
	return nil, repository.ErrCartItemNotFound
}

func (m *mockCartItemRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.CartItem, error) {
	ids := make([]int64, 0, len(m.items))
	for id, item := range m.items {
		if item.CustomerID == customerID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	items := []domain.CartItem{}
	for _, id := range ids {
		items = append(items, m.items[id])
	}
	return items, nil
}

func (m *mockCartItemRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if _, exists := m.items[id]; !exists {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

func (m *mockCartItemRepository) DeleteByCustomer(ctx context.Context, customerID int64) error {
	for id, item := range m.items {
		if item.CustomerID == customerID {
			delete(m.items, id)
		}
	}
	return nil
}
