package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/orderbridge-backend/internal/data/repos"
	domainagg "github.com/yungbote/orderbridge-backend/internal/domain/aggregates"
	"github.com/yungbote/orderbridge-backend/internal/domain/orders"
	"github.com/yungbote/orderbridge-backend/internal/observability"
	"github.com/yungbote/orderbridge-backend/internal/platform/dbctx"
	"github.com/yungbote/orderbridge-backend/internal/platform/logger"
)

const defaultHydrateConcurrency = 8

// OrderPage is one page of order views in list order.
type OrderPage struct {
	Items    []orders.OrderView `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}

type OrderQueryService interface {
	// List returns a filtered page. viewAs restricts the page to orders the
	// user is responsible for and sanitizes every view for that user.
	List(ctx context.Context, tenantID uuid.UUID, f repos.OrderListFilter, viewAs *uuid.UUID) (OrderPage, error)
	FindOne(ctx context.Context, tenantID, orderID uuid.UUID, viewAs *uuid.UUID) (*orders.OrderView, error)
}

type OrderQueryDeps struct {
	Orders           repos.OrderRepo
	Items            repos.OrderItemRepo
	Responsibilities repos.ResponsibilityRepo
	Installments     repos.InstallmentRepo
	Names            repos.RegistryNameRepo
	Metrics          *observability.Metrics
	// HydrateConcurrency bounds concurrent per-order hydration in List.
	HydrateConcurrency int
}

type orderQueryService struct {
	log  *logger.Logger
	deps OrderQueryDeps
}

func NewOrderQueryService(log *logger.Logger, deps OrderQueryDeps) OrderQueryService {
	if deps.HydrateConcurrency <= 0 {
		deps.HydrateConcurrency = defaultHydrateConcurrency
	}
	return &orderQueryService{
		log:  log.With("service", "OrderQueryService"),
		deps: deps,
	}
}

func (s *orderQueryService) List(ctx context.Context, tenantID uuid.UUID, f repos.OrderListFilter, viewAs *uuid.UUID) (OrderPage, error) {
	f = f.Normalize()
	page := OrderPage{Items: []orders.OrderView{}, Page: f.Page, PageSize: f.PageSize}

	// The sanitizer runs for whoever the page is scoped to: the restricted
	// viewer, or the responsible user an unrestricted caller filtered on.
	sanitizeFor := f.UserID
	if viewAs != nil {
		if f.UserID != nil && *f.UserID != *viewAs {
			return page, nil
		}
		id := *viewAs
		f.UserID = &id
		sanitizeFor = &id
	}

	dbc := dbctx.New(ctx)
	ids, total, err := s.deps.Orders.ListIDs(dbc, tenantID, f)
	if err != nil {
		return page, domainagg.Wrap(domainagg.CodeInternal, "orders.list", err)
	}
	page.Total = total
	if len(ids) == 0 {
		return page, nil
	}

	start := time.Now()
	views := make([]*orders.OrderView, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.deps.HydrateConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			v, err := s.hydrate(dbctx.New(gctx), tenantID, id)
			if err != nil {
				return err
			}
			views[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return page, domainagg.Wrap(domainagg.CodeInternal, "orders.list", err)
	}
	if s.deps.Metrics != nil {
		s.deps.Metrics.ObserveListHydration("list", time.Since(start))
	}

	for _, v := range views {
		// archived between the id query and hydration
		if v == nil {
			continue
		}
		out, ok, err := orders.Sanitize(*v, sanitizeFor)
		if err != nil {
			return page, domainagg.Wrap(domainagg.CodeInternal, "orders.list", err)
		}
		if !ok {
			continue
		}
		page.Items = append(page.Items, out)
	}
	return page, nil
}

func (s *orderQueryService) FindOne(ctx context.Context, tenantID, orderID uuid.UUID, viewAs *uuid.UUID) (*orders.OrderView, error) {
	const op = "orders.find_one"
	v, err := s.hydrate(dbctx.New(ctx), tenantID, orderID)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if v == nil {
		return nil, domainagg.NotFound(op, "order")
	}
	out, ok, err := orders.Sanitize(*v, viewAs)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if !ok {
		return nil, domainagg.NotFound(op, "order")
	}
	return &out, nil
}

// hydrate loads one order with all of its children and display names. It
// returns nil when the order is absent, archived or owned by another tenant.
func (s *orderQueryService) hydrate(dbc dbctx.Context, tenantID, orderID uuid.UUID) (*orders.OrderView, error) {
	o, err := s.deps.Orders.GetByID(dbc, tenantID, orderID)
	if err != nil || o == nil {
		return nil, err
	}
	ids := []uuid.UUID{o.ID}

	items, err := s.deps.Items.GetByOrderIDs(dbc, ids)
	if err != nil {
		return nil, err
	}
	itemIDs := make([]uuid.UUID, 0, len(items))
	funcIDs := make([]uuid.UUID, 0, len(items))
	byItem := make(map[uuid.UUID]*orders.OrderItem, len(items))
	for _, it := range items {
		itemIDs = append(itemIDs, it.ID)
		funcIDs = append(funcIDs, it.FunctionalityID)
		byItem[it.ID] = it
	}

	resps, err := s.deps.Responsibilities.GetByItemIDs(dbc, itemIDs)
	if err != nil {
		return nil, err
	}
	userIDs := make([]uuid.UUID, 0, len(resps))
	for _, r := range resps {
		if it := byItem[r.OrderItemID]; it != nil {
			it.Responsibilities = append(it.Responsibilities, r)
		}
		userIDs = append(userIDs, r.UserID)
	}

	insts, err := s.deps.Installments.GetByOrderIDs(dbc, ids)
	if err != nil {
		return nil, err
	}
	o.Items = items
	o.Installments = insts

	var names orders.Names
	if names.Clients, err = s.deps.Names.ClientNames(dbc, tenantID, []uuid.UUID{o.ClientID}); err != nil {
		return nil, err
	}
	if names.Functionalities, err = s.deps.Names.FunctionalityNames(dbc, tenantID, funcIDs); err != nil {
		return nil, err
	}
	if names.Users, err = s.deps.Names.UserNames(dbc, userIDs); err != nil {
		return nil, err
	}

	v := orders.BuildView(o, names)
	return &v, nil
}
