package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/orderbridge-backend/internal/data/repos"
	"github.com/yungbote/orderbridge-backend/internal/domain/orders"
	"github.com/yungbote/orderbridge-backend/internal/platform/apierr"
)

func optionalUUID(c *gin.Context, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apierr.BadRequest("invalid_"+key, errors.New(key+" must be a uuid"))
	}
	return &id, nil
}

func optionalInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apierr.BadRequest("invalid_"+key, errors.New(key+" must be a positive integer"))
	}
	return n, nil
}

// parseListFilter reads the GET /orders query string. Out of range page sizes
// are clamped later by the repository.
func parseListFilter(c *gin.Context) (repos.OrderListFilter, error) {
	var f repos.OrderListFilter
	var err error

	if raw := strings.ToUpper(strings.TrimSpace(c.Query("paymentStatus"))); raw != "" {
		f.PaymentStatus = orders.PaymentStatus(raw)
		if !f.PaymentStatus.Valid() {
			return f, apierr.BadRequest("invalid_paymentStatus", errors.New("unknown payment status"))
		}
	}
	if raw := strings.ToUpper(strings.TrimSpace(c.Query("workStatus"))); raw != "" {
		f.WorkStatus = orders.WorkStatus(raw)
		if !f.WorkStatus.Valid() {
			return f, apierr.BadRequest("invalid_workStatus", errors.New("unknown work status"))
		}
	}
	if f.ClientID, err = optionalUUID(c, "clientId"); err != nil {
		return f, err
	}
	if f.FunctionalityID, err = optionalUUID(c, "functionalityId"); err != nil {
		return f, err
	}
	if f.UserID, err = optionalUUID(c, "responsibleId"); err != nil {
		return f, err
	}
	for key, dst := range map[string]**time.Time{"from": &f.From, "to": &f.To} {
		raw := strings.TrimSpace(c.Query(key))
		if raw == "" {
			continue
		}
		t, err := orders.ParseDate(raw)
		if err != nil {
			return f, apierr.BadRequest("invalid_"+key, err)
		}
		*dst = &t
	}
	if f.Page, err = optionalInt(c, "page"); err != nil {
		return f, err
	}
	if f.PageSize, err = optionalInt(c, "pageSize"); err != nil {
		return f, err
	}
	return f, nil
}
