package registry

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/mmynk/billbook/internal/storage"
)

// mockStore is a testify mock of storage.Store.
type mockStore struct {
	mock.Mock
}

var _ storage.Store = (*mockStore)(nil)

func (m *mockStore) EnsureSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStore) AddCustomer(ctx context.Context, name, email, phone string) (int64, error) {
	args := m.Called(ctx, name, email, phone)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) AddBill(ctx context.Context, customerID int64, items string, total decimal.Decimal) (int64, time.Time, error) {
	args := m.Called(ctx, customerID, items, total)
	return args.Get(0).(int64), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockStore) UpdateBill(ctx context.Context, id int64, items string, total decimal.Decimal) error {
	return m.Called(ctx, id, items, total).Error(0)
}

func (m *mockStore) DeleteBill(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStore) GetAllBills(ctx context.Context) ([]storage.BillRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]storage.BillRow), args.Error(1)
}

func (m *mockStore) Close() error {
	return m.Called().Error(0)
}
