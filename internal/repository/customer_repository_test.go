package repository

import (
	"context"
	"testing"
	"time"

	"cerveceria-pos/internal/domain"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCreateAndFind(t *testing.T) {
	repo := NewCustomerRepository(testDB)
	ctx := context.Background()

	customer := &domain.Customer{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Address:   gofakeit.Street(),
		Phone:     int64(gofakeit.Number(1_000_000, 999_999_999)),
		Email:     gofakeit.Email(),
	}

	require.NoError(t, repo.Create(ctx, customer))
	require.NotZero(t, customer.ID)

	found, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, customer, found)
}

func TestCustomerFindMissing(t *testing.T) {
	repo := NewCustomerRepository(testDB)

	_, err := repo.FindByID(context.Background(), 99_999_999)
	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerUpdateAddress(t *testing.T) {
	repo := NewCustomerRepository(testDB)
	ctx := context.Background()

	customer := &domain.Customer{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Address:   "calle 30 #20",
		Phone:     3_772_717_809,
		Email:     gofakeit.Email(),
	}
	require.NoError(t, repo.Create(ctx, customer))

	require.NoError(t, repo.UpdateAddress(ctx, customer.ID, "carrera 7 #45"))

	found, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "carrera 7 #45", found.Address)

	err = repo.UpdateAddress(ctx, 99_999_999, "nowhere")
	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestProductCreateRenameDelete(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	product := &domain.Product{
		Name:            "Cerveza Premium",
		Measure:         "500 ml",
		ExpiresAt:       time.Now().AddDate(0, 6, 0).Truncate(24 * time.Hour),
		ProductionPrice: 4000,
		SalePrice:       10000,
	}

	require.NoError(t, repo.Create(ctx, product))
	require.NotZero(t, product.ID)

	require.NoError(t, repo.UpdateName(ctx, product.ID, "Cerveza Premium Oscura"))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cerveza Premium Oscura", found.Name)
	assert.Equal(t, int64(10000), found.SalePrice)

	require.NoError(t, repo.Delete(ctx, product.ID))
	_, err = repo.FindByID(ctx, product.ID)
	require.ErrorIs(t, err, ErrProductNotFound)

	err = repo.Delete(ctx, product.ID)
	require.ErrorIs(t, err, ErrProductNotFound)
}
