package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainagg "github.com/yungbote/orderbridge-backend/internal/domain/aggregates"
	"github.com/yungbote/orderbridge-backend/internal/domain/auth"
	"github.com/yungbote/orderbridge-backend/internal/domain/orders"
	"github.com/yungbote/orderbridge-backend/internal/http/middleware"
	"github.com/yungbote/orderbridge-backend/internal/http/response"
	"github.com/yungbote/orderbridge-backend/internal/platform/apierr"
	"github.com/yungbote/orderbridge-backend/internal/platform/logger"
	"github.com/yungbote/orderbridge-backend/internal/services"
)

type OrderHandler struct {
	log    *logger.Logger
	orders services.OrderService
	query  services.OrderQueryService
}

func NewOrderHandler(log *logger.Logger, orders services.OrderService, query services.OrderQueryService) *OrderHandler {
	return &OrderHandler{
		log:    log.With("handler", "OrderHandler"),
		orders: orders,
		query:  query,
	}
}

type responsibleRequest struct {
	UserID            string          `json:"userId"`
	Amount            decimal.Decimal `json:"amount"`
	AssistantDeadline string          `json:"assistantDeadline"`
	Description       string          `json:"description"`
}

type itemRequest struct {
	FunctionalityID string              `json:"functionalityId"`
	Price           decimal.Decimal     `json:"price"`
	ClientDeadline  string              `json:"clientDeadline"`
	ItemStatus      string              `json:"itemStatus"`
	Responsible     *responsibleRequest `json:"responsible"`
}

type installmentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	DueDate       string          `json:"dueDate"`
	Channel       string          `json:"channel"`
	PaymentMethod string          `json:"paymentMethod"`
}

type createOrderRequest struct {
	ClientID      string               `json:"clientId"`
	ContractDate  string               `json:"contractDate"`
	PaymentMethod string               `json:"paymentMethod"`
	PaymentTerms  string               `json:"paymentTerms"`
	WorkStatus    string               `json:"workStatus"`
	HasInvoice    bool                 `json:"hasInvoice"`
	Description   string               `json:"description"`
	Items         []itemRequest        `json:"items"`
	Installments  []installmentRequest `json:"installments"`
}

type installmentEditRequest struct {
	ID            string           `json:"id"`
	Amount        *decimal.Decimal `json:"amount"`
	DueDate       *string          `json:"dueDate"`
	Channel       *string          `json:"channel"`
	PaymentMethod *string          `json:"paymentMethod"`
}

type updateInstallmentsRequest struct {
	Redistribute bool                     `json:"redistribute"`
	Installments []installmentEditRequest `json:"installments"`
}

type payRequest struct {
	PaidAt string `json:"paidAt"`
}

type statusRequest struct {
	ItemStatus string `json:"itemStatus"`
}

type planRequest struct {
	Count         int    `json:"count"`
	BaseDate      string `json:"baseDate"`
	Channel       string `json:"channel"`
	PaymentMethod string `json:"paymentMethod"`
}

func paramUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apierr.BadRequest("invalid_"+name, errors.New(name+" must be a uuid"))
	}
	return id, nil
}

func bodyUUID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apierr.BadRequest("invalid_"+field, errors.New(field+" must be a uuid"))
	}
	return id, nil
}

func bodyDate(field, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := orders.ParseDate(raw)
	if err != nil {
		return nil, apierr.BadRequest("invalid_"+field, err)
	}
	return &t, nil
}

func requiredDate(field, raw string) (time.Time, error) {
	t, err := bodyDate(field, raw)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, apierr.BadRequest("invalid_"+field, errors.New(field+" is required"))
	}
	return *t, nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apierr.BadRequest("invalid_request", err)
	}
	return nil
}

func (r itemRequest) toInput() (domainagg.ItemInput, error) {
	var in domainagg.ItemInput
	var err error
	if in.FunctionalityID, err = bodyUUID("functionalityId", r.FunctionalityID); err != nil {
		return in, err
	}
	in.Price = r.Price
	if in.ClientDeadline, err = bodyDate("clientDeadline", r.ClientDeadline); err != nil {
		return in, err
	}
	in.ItemStatus = orders.ItemStatus(strings.ToUpper(strings.TrimSpace(r.ItemStatus)))
	if r.Responsible != nil {
		resp := &domainagg.ResponsibilityInput{Amount: r.Responsible.Amount, Description: r.Responsible.Description}
		if resp.UserID, err = bodyUUID("responsible.userId", r.Responsible.UserID); err != nil {
			return in, err
		}
		if resp.AssistantDeadline, err = bodyDate("responsible.assistantDeadline", r.Responsible.AssistantDeadline); err != nil {
			return in, err
		}
		in.Responsible = resp
	}
	return in, nil
}

func (r createOrderRequest) toInput() (domainagg.CreateOrderInput, error) {
	in := domainagg.CreateOrderInput{
		PaymentMethod: r.PaymentMethod,
		PaymentTerms:  r.PaymentTerms,
		WorkStatus:    orders.WorkStatus(strings.ToUpper(strings.TrimSpace(r.WorkStatus))),
		HasInvoice:    r.HasInvoice,
		Description:   r.Description,
	}
	var err error
	if in.ClientID, err = bodyUUID("clientId", r.ClientID); err != nil {
		return in, err
	}
	if in.ContractDate, err = requiredDate("contractDate", r.ContractDate); err != nil {
		return in, err
	}
	for _, it := range r.Items {
		item, err := it.toInput()
		if err != nil {
			return in, err
		}
		in.Items = append(in.Items, item)
	}
	for _, inst := range r.Installments {
		due, err := requiredDate("dueDate", inst.DueDate)
		if err != nil {
			return in, err
		}
		in.Installments = append(in.Installments, domainagg.InstallmentInput{
			Amount:        inst.Amount,
			DueDate:       due,
			Channel:       inst.Channel,
			PaymentMethod: inst.PaymentMethod,
		})
	}
	return in, nil
}

func (r updateInstallmentsRequest) toEdits() ([]domainagg.InstallmentEdit, error) {
	edits := make([]domainagg.InstallmentEdit, 0, len(r.Installments))
	for _, e := range r.Installments {
		id, err := bodyUUID("installments.id", e.ID)
		if err != nil {
			return nil, err
		}
		edit := domainagg.InstallmentEdit{
			InstallmentID: id,
			Amount:        e.Amount,
			Channel:       e.Channel,
			PaymentMethod: e.PaymentMethod,
		}
		if e.DueDate != nil {
			if edit.DueDate, err = bodyDate("installments.dueDate", *e.DueDate); err != nil {
				return nil, err
			}
		}
		edits = append(edits, edit)
	}
	return edits, nil
}

func principal(c *gin.Context) (auth.Principal, bool) {
	p, ok := middleware.Principal(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing or invalid token"))
	}
	return p, ok
}

// POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req createOrderRequest
	if err := bindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		response.Fail(c, err)
		return
	}
	res, err := h.orders.Create(c.Request.Context(), p, in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondCreated(c, res)
}

// GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	f, err := parseListFilter(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	page, err := h.query.List(c.Request.Context(), p.TenantID, f, p.ViewAs())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondOK(c, page)
}

// GET /api/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	orderID, err := paramUUID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	v, err := h.query.FindOne(c.Request.Context(), p.TenantID, orderID, p.ViewAs())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondOK(c, gin.H{"order": v})
}

// POST /api/orders/:id/items
func (h *OrderHandler) AddItem(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	orderID, err := paramUUID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req itemRequest
	if err := bindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	item, err := req.toInput()
	if err != nil {
		response.Fail(c, err)
		return
	}
	res, err := h.orders.AddItem(c.Request.Context(), p, orderID, item)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondCreated(c, res)
}

// DELETE /api/orders/:id/items/:itemId
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	orderID, err := paramUUID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	itemID, err := paramUUID(c, "itemId")
	if err != nil {
		response.Fail(c, err)
		return
	}
	res, err := h.orders.RemoveItem(c.Request.Context(), p, orderID, itemID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondOK(c, res)
}

// PATCH /api/orders/:id/installments
func (h *OrderHandler) UpdateInstallments(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	orderID, err := paramUUID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req updateInstallmentsRequest
	if err := bindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	edits, err := req.toEdits()
	if err != nil {
		response.Fail(c, err)
		return
	}
	res, err := h.orders.UpdateInstallments(c.Request.Context(), p, orderID, edits, req.Redistribute)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondOK(c, res)
}

// PATCH /api/orders/:id/installments/:instId/pay
func (h *OrderHandler) PayInstallment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	orderID, err := paramUUID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	instID, err := paramUUID(c, "instId")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req payRequest
	if err := bindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	res, err := h.orders.PayInstallment(c.Request.Context(), p, orderID, instID, req.PaidAt)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondOK(c, res)
}

// PATCH /api/orders/:id/items/:itemId/status
func (h *OrderHandler) UpdateItemStatus(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	orderID, err := paramUUID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	itemID, err := paramUUID(c, "itemId")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req statusRequest
	if err := bindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	status := orders.ItemStatus(strings.ToUpper(strings.TrimSpace(req.ItemStatus)))
	res, err := h.orders.UpdateItemStatus(c.Request.Context(), p, orderID, itemID, status)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondOK(c, res)
}

// POST /api/orders/:id/installments/plan
func (h *OrderHandler) PlanInstallments(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	orderID, err := paramUUID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req planRequest
	if err := bindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	base, err := requiredDate("baseDate", req.BaseDate)
	if err != nil {
		response.Fail(c, err)
		return
	}
	res, err := h.orders.PlanInstallments(c.Request.Context(), p, domainagg.PlanInstallmentsInput{
		OrderID:       orderID,
		Count:         req.Count,
		BaseDate:      base,
		Channel:       req.Channel,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondCreated(c, res)
}

// DELETE /api/orders/:id
func (h *OrderHandler) Archive(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	orderID, err := paramUUID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := h.orders.Archive(c.Request.Context(), p, orderID); err != nil {
		response.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
