package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/orderbridge-backend/internal/data/repos"
	domainagg "github.com/yungbote/orderbridge-backend/internal/domain/aggregates"
	"github.com/yungbote/orderbridge-backend/internal/platform/dbctx"
	"github.com/yungbote/orderbridge-backend/internal/platform/logger"
)

type DashboardSummary struct {
	TotalRevenue    decimal.Decimal     `json:"totalRevenue"`
	TotalCost       decimal.Decimal     `json:"totalCost"`
	NetProfit       decimal.Decimal     `json:"netProfit"`
	Margin          decimal.Decimal     `json:"margin"`
	OverdueItems    int64               `json:"overdueItems"`
	ByPaymentStatus []repos.StatusCount `json:"byPaymentStatus"`
	ByWorkStatus    []repos.StatusCount `json:"byWorkStatus"`
}

type AdminSummary struct {
	Tenants             int64 `json:"tenants"`
	ActiveUsers         int64 `json:"activeUsers"`
	OverdueInstallments int64 `json:"overdueInstallments"`
}

type DashboardService interface {
	// Summary re-scopes every query to viewAs when it is set; revenue is then
	// reported as zero and cost is the viewer's own payouts.
	Summary(ctx context.Context, tenantID uuid.UUID, viewAs *uuid.UUID) (DashboardSummary, error)
	// AdminSummary spans every tenant. Callers must gate it to platform admins.
	AdminSummary(ctx context.Context) (AdminSummary, error)
	Invalidate(ctx context.Context, tenantID uuid.UUID)
}

type DashboardDeps struct {
	Orders           repos.OrderRepo
	Items            repos.OrderItemRepo
	Responsibilities repos.ResponsibilityRepo
	Installments     repos.InstallmentRepo
	Stats            repos.RegistryStatsRepo
	Cache            DashboardCache
	Clock            func() time.Time
}

type dashboardService struct {
	log  *logger.Logger
	deps DashboardDeps
}

func NewDashboardService(log *logger.Logger, deps DashboardDeps) DashboardService {
	if deps.Cache == nil {
		deps.Cache = NewNoopDashboardCache()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &dashboardService{
		log:  log.With("service", "DashboardService"),
		deps: deps,
	}
}

var hundred = decimal.NewFromInt(100)

func (s *dashboardService) Summary(ctx context.Context, tenantID uuid.UUID, viewAs *uuid.UUID) (DashboardSummary, error) {
	cached, gen, ok := s.deps.Cache.Get(ctx, tenantID, viewAs)
	if ok {
		return *cached, nil
	}

	now := s.deps.Clock().UTC()
	out := DashboardSummary{
		TotalRevenue:    decimal.Zero,
		ByPaymentStatus: []repos.StatusCount{},
		ByWorkStatus:    []repos.StatusCount{},
	}
	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.New(gctx)

	if viewAs == nil {
		g.Go(func() error {
			var err error
			out.TotalRevenue, err = s.deps.Orders.SumAmountTotal(dbc, tenantID)
			return err
		})
	}
	g.Go(func() error {
		var err error
		out.TotalCost, err = s.deps.Responsibilities.SumPayouts(dbc, tenantID, viewAs)
		return err
	})
	g.Go(func() error {
		var err error
		out.OverdueItems, err = s.deps.Items.CountOverdue(dbc, tenantID, viewAs, now)
		return err
	})
	g.Go(func() error {
		rows, err := s.deps.Orders.CountByPaymentStatus(dbc, tenantID, viewAs)
		if err == nil && rows != nil {
			out.ByPaymentStatus = rows
		}
		return err
	})
	g.Go(func() error {
		rows, err := s.deps.Orders.CountByWorkStatus(dbc, tenantID, viewAs)
		if err == nil && rows != nil {
			out.ByWorkStatus = rows
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardSummary{}, domainagg.Wrap(domainagg.CodeInternal, "dashboard.summary", err)
	}

	// A restricted viewer sees no revenue, so profit is not derivable for them.
	out.NetProfit = decimal.Zero
	if viewAs == nil {
		out.NetProfit = out.TotalRevenue.Sub(out.TotalCost)
	}
	out.Margin = decimal.Zero
	if !out.TotalRevenue.IsZero() {
		out.Margin = out.NetProfit.Div(out.TotalRevenue).Mul(hundred).Round(2)
	}
	s.deps.Cache.Set(ctx, tenantID, gen, viewAs, out)
	return out, nil
}

func (s *dashboardService) AdminSummary(ctx context.Context) (AdminSummary, error) {
	var out AdminSummary
	now := s.deps.Clock().UTC()
	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.New(gctx)
	g.Go(func() error {
		var err error
		out.Tenants, err = s.deps.Stats.CountActiveTenants(dbc)
		return err
	})
	g.Go(func() error {
		var err error
		out.ActiveUsers, err = s.deps.Stats.CountActiveUsers(dbc)
		return err
	})
	g.Go(func() error {
		var err error
		out.OverdueInstallments, err = s.deps.Installments.CountOverdueUnpaid(dbc, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return AdminSummary{}, domainagg.Wrap(domainagg.CodeInternal, "dashboard.admin", err)
	}
	return out, nil
}

func (s *dashboardService) Invalidate(ctx context.Context, tenantID uuid.UUID) {
	s.deps.Cache.Invalidate(ctx, tenantID)
}
