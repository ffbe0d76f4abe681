package report

import (
	"context"
	"time"

	"delservice/internal/apperr"
	"delservice/internal/logger"
	"delservice/internal/metrics"
	"delservice/internal/order"

	"go.uber.org/zap"
)

// reportWindow is the trailing period covered by the courier section.
const reportWindow = 30 * 24 * time.Hour

const recentOrderCount = 10

var buildCount metrics.Counter

// OrderLister is the slice of the order repository the dashboard needs.
type OrderLister interface {
	Search(ctx context.Context, f order.Filter, limit, offset int) ([]*order.Order, error)
}

type Service interface {
	// Activity builds the aggregation behind both the report screen and
	// the PDF download.
	Activity(ctx context.Context) (*Activity, error)
	ActivityPDF(ctx context.Context) ([]byte, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type service struct {
	repo   Repository
	orders OrderLister
	now    func() time.Time
}

func NewService(repo Repository, orders OrderLister) Service {
	return &service{repo: repo, orders: orders, now: time.Now}
}

func (s *service) Activity(ctx context.Context) (*Activity, error) {
	timer := metrics.StartTimer()
	now := s.now()

	a := &Activity{
		GeneratedAt: now,
		Since:       now.Add(-reportWindow),
	}

	var err error
	if a.Couriers, err = s.repo.CourierStats(ctx, a.Since); err != nil {
		return nil, err
	}
	if a.Statuses, err = s.repo.StatusStats(ctx); err != nil {
		return nil, err
	}
	if a.Payments, err = s.repo.PaymentStats(ctx); err != nil {
		return nil, err
	}

	buildCount.Inc()
	logger.FromCtx(ctx).Info("activity report built",
		zap.Duration("duration", timer.Duration()),
		zap.Uint64("reports_built", buildCount.Load()))
	return a, nil
}

func (s *service) ActivityPDF(ctx context.Context) ([]byte, error) {
	a, err := s.Activity(ctx)
	if err != nil {
		return nil, err
	}

	out, err := renderPDF(a)
	if err != nil {
		return nil, apperr.DependencyUnavailable("pdf renderer", err)
	}
	return out, nil
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	d := &Dashboard{}
	var err error
	d.TotalOrders, d.PendingOrders, d.ActiveCouriers, d.TodayOrders, err =
		s.repo.DashboardCounts(ctx, todayStart)
	if err != nil {
		return nil, err
	}

	d.RecentOrders, err = s.orders.Search(ctx, order.Filter{}, recentOrderCount, 0)
	if err != nil {
		return nil, err
	}
	return d, nil
}
