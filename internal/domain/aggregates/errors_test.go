package aggregates

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf_Wrapped(t *testing.T) {
	base := NewError(CodeConflict, "order.add_item", "stale version", nil)
	wrapped := fmt.Errorf("outer: %w", base)
	assert.Equal(t, CodeConflict, CodeOf(wrapped))
	assert.True(t, IsCode(wrapped, CodeConflict))
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
}

func TestPublicMessage_HidesInternalCause(t *testing.T) {
	err := Wrap(CodeInternal, "order.create", errors.New(`pq: relation "orders" does not exist`))
	assert.Equal(t, "internal error", PublicMessage(err))
	assert.Equal(t, "internal error", PublicMessage(errors.New("raw driver text")))
}

func TestPublicMessage_StripsSentinelLine(t *testing.T) {
	joined := errors.Join(errors.New("aggregate validation"), errors.New("paidAt is required"))
	err := Wrap(CodeValidation, "order.pay_installment", joined)
	assert.Equal(t, "paidAt is required", PublicMessage(err))
}

func TestNotFound(t *testing.T) {
	err := NotFound("order.find", "order")
	assert.True(t, IsCode(err, CodeNotFound))
	assert.Equal(t, "order not found", PublicMessage(err))
}
