package aggregates_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/yungbote/orderbridge-backend/internal/data/aggregates"
	domainagg "github.com/yungbote/orderbridge-backend/internal/domain/aggregates"
	"gorm.io/gorm"
)

func TestMapError_Sentinels(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domainagg.ErrorCode
	}{
		{"validation", aggregates.ValidationError("bad input"), domainagg.CodeValidation},
		{"not found", aggregates.NotFoundError("order"), domainagg.CodeNotFound},
		{"gorm not found", gorm.ErrRecordNotFound, domainagg.CodeNotFound},
		{"conflict", aggregates.ConflictError("stale"), domainagg.CodeConflict},
		{"precondition", aggregates.PreconditionError("paid"), domainagg.CodePreconditionFailed},
		{"invariant", aggregates.InvariantError("broken"), domainagg.CodeInvariantViolation},
		{"retryable", aggregates.RetryableError("later"), domainagg.CodeRetryable},
		{"deadline", context.DeadlineExceeded, domainagg.CodeRetryable},
		{"unknown", errors.New("disk on fire"), domainagg.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domainagg.CodeOf(aggregates.MapError("op", tc.err)))
		})
	}
}

func TestMapError_PostgresCodes(t *testing.T) {
	cases := map[string]domainagg.ErrorCode{
		"23505": domainagg.CodeConflict,
		"23503": domainagg.CodePreconditionFailed,
		"40001": domainagg.CodeRetryable,
		"40P01": domainagg.CodeRetryable,
	}
	for code, want := range cases {
		err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: code})
		assert.Equal(t, want, domainagg.CodeOf(aggregates.MapError("op", err)), code)
	}
}

func TestMapError_SQLiteUniqueIsConflict(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: orders.tenant_id, orders.order_number")
	assert.Equal(t, domainagg.CodeConflict, domainagg.CodeOf(aggregates.MapError("op", err)))
}

func TestMapError_PassthroughAggregateError(t *testing.T) {
	in := domainagg.NewError(domainagg.CodeRetryable, "op", "retry", errors.New("boom"))
	assert.Same(t, in, aggregates.MapError("other", in))
}

func TestMapError_PublicMessageHidesInternals(t *testing.T) {
	err := aggregates.MapError("op", errors.New("pq: relation \"orders\" does not exist"))
	assert.Equal(t, "internal error", domainagg.PublicMessage(err))

	err = aggregates.MapError("op", aggregates.ValidationError("client id is required"))
	assert.Equal(t, "client id is required", domainagg.PublicMessage(err))
}
