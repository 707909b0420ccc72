package customer

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/qwertymuzaffar/retail-backoffice/pkg/db/models"
	pkgerrors "github.com/qwertymuzaffar/retail-backoffice/pkg/errors"
)

type stubOrderLister struct {
	rows []models.OrderDetails
	err  error
}

func (s stubOrderLister) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.OrderDetails, error) {
	return s.rows, s.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:customers_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB, orders orderLister) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), orders)
	require.NoError(t, err)
	return svc
}

func seedCustomer(t *testing.T, db *gorm.DB, email string, createdAt time.Time) models.Customer {
	t.Helper()
	record := models.Customer{
		ID:        uuid.New(),
		Name:      "Ada Lovelace",
		Email:     email,
		Phone:     "555-0100",
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(&record).Error)
	return record
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)

	_, err := NewService(nil, stubOrderLister{})
	require.Error(t, err)
	_, err = NewService(NewRepository(db), nil)
	require.Error(t, err)
}

func TestGetCustomer(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, stubOrderLister{})
	ctx := context.Background()

	seeded := seedCustomer(t, db, "ada@example.com", time.Now().UTC())

	found, err := svc.GetCustomer(ctx, seeded.ID)
	require.NoError(t, err)
	require.Equal(t, seeded.ID, found.ID)
	require.Equal(t, "ada@example.com", found.Email)

	_, err = svc.GetCustomer(ctx, uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestLookupByEmailOldestWins(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, stubOrderLister{})

	now := time.Now().UTC()
	oldest := seedCustomer(t, db, "ada@example.com", now.Add(-time.Hour))
	seedCustomer(t, db, "ada@example.com", now)

	found, err := svc.LookupByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, oldest.ID, found.ID)
}

func TestLookupByEmailValidation(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, stubOrderLister{})
	ctx := context.Background()

	_, err := svc.LookupByEmail(ctx, "   ")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.LookupByEmail(ctx, "nobody@example.com")
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCustomerOrders(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	seeded := seedCustomer(t, db, "ada@example.com", time.Now().UTC())
	orders := []models.OrderDetails{
		{ID: uuid.New(), CustomerID: seeded.ID},
		{ID: uuid.New(), CustomerID: seeded.ID},
	}
	svc := newTestService(t, db, stubOrderLister{rows: orders})

	rows, err := svc.CustomerOrders(ctx, seeded.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	_, err = svc.CustomerOrders(ctx, uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
