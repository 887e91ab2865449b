package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOrderNumber(t *testing.T) {
	d := time.Date(2024, 7, 9, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD-20240709-0001", FormatOrderNumber(d, 1))
	assert.Equal(t, "ORD-20240709-12345", FormatOrderNumber(d, 12345))
}

func TestParsePaidAt(t *testing.T) {
	got, err := ParsePaidAt("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParsePaidAt("2024-05-01T10:30:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 13, 30, 0, 0, time.UTC), got)

	_, err = ParsePaidAt("")
	assert.ErrorIs(t, err, ErrPaidAtRequired)

	_, err = ParsePaidAt("01/05/2024")
	assert.Error(t, err)

	_, err = ParsePaidAt("2024-02-30")
	assert.Error(t, err)
}
