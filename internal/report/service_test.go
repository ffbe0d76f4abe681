package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"delservice/internal/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CourierStats(ctx context.Context, since time.Time) ([]CourierStat, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CourierStat), args.Error(1)
}

func (m *MockRepository) StatusStats(ctx context.Context) ([]StatusStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]StatusStat), args.Error(1)
}

func (m *MockRepository) PaymentStats(ctx context.Context) ([]PaymentStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PaymentStat), args.Error(1)
}

func (m *MockRepository) DashboardCounts(ctx context.Context, todayStart time.Time) (int, int, int, int, error) {
	args := m.Called(ctx, todayStart)
	return args.Int(0), args.Int(1), args.Int(2), args.Int(3), args.Error(4)
}

type mockOrderLister struct {
	mock.Mock
}

func (m *mockOrderLister) Search(ctx context.Context, f order.Filter, limit, offset int) ([]*order.Order, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func sampleActivity() *Activity {
	return &Activity{
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Since:       time.Date(2026, 1, 30, 12, 0, 0, 0, time.UTC),
		Couriers:    []CourierStat{{CourierID: 2, Name: "Pavel Novak", Deliveries: 14, Earnings: decimal.NewFromInt(4200)}},
		Statuses:    []StatusStat{{StatusID: 1, Name: "Created", Orders: 5}},
		Payments:    []PaymentStat{{MethodID: 2, Name: "Card", Payments: 7, Amount: decimal.NewFromInt(2450)}},
	}
}

func TestService_Activity(t *testing.T) {
	ctx := context.Background()

	t.Run("ThirtyDayWindow", func(t *testing.T) {
		repo := new(MockRepository)
		var gotSince time.Time
		repo.On("CourierStats", ctx, mock.AnythingOfType("time.Time")).
			Run(func(args mock.Arguments) { gotSince = args.Get(1).(time.Time) }).
			Return([]CourierStat{}, nil)
		repo.On("StatusStats", ctx).Return([]StatusStat{}, nil)
		repo.On("PaymentStats", ctx).Return([]PaymentStat{}, nil)

		svc := NewService(repo, new(mockOrderLister))
		a, err := svc.Activity(ctx)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(-30*24*time.Hour), gotSince, time.Minute)
		assert.Equal(t, gotSince, a.Since)
	})

	t.Run("QueryFailure", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CourierStats", ctx, mock.Anything).Return(nil, errors.New("db down"))

		svc := NewService(repo, new(mockOrderLister))
		_, err := svc.Activity(ctx)
		assert.Error(t, err)
	})
}

func TestService_Dashboard(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	repo.On("DashboardCounts", ctx, mock.AnythingOfType("time.Time")).
		Return(120, 8, 5, 3, nil)

	orders := new(mockOrderLister)
	orders.On("Search", ctx, order.Filter{}, 10, 0).
		Return([]*order.Order{{ID: 42}}, nil)

	svc := NewService(repo, orders)
	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120, d.TotalOrders)
	assert.Equal(t, 8, d.PendingOrders)
	assert.Equal(t, 5, d.ActiveCouriers)
	assert.Equal(t, 3, d.TodayOrders)
	require.Len(t, d.RecentOrders, 1)
}

func TestRenderPDF(t *testing.T) {
	t.Run("ProducesDocument", func(t *testing.T) {
		out, err := renderPDF(sampleActivity())
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		assert.Greater(t, len(out), 500)
	})

	t.Run("EmptySections", func(t *testing.T) {
		out, err := renderPDF(&Activity{GeneratedAt: time.Now(), Since: time.Now()})
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	})
}
