package sl_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/membership-engine/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	err := errors.New("something went wrong")
	attr := sl.Err(err)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("something went wrong"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	assert.Panics(t, func() {
		_ = sl.Err(nil)
	})
}

func TestDate(t *testing.T) {
	attr := sl.Date("due_date", time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, "due_date", attr.Key)
	assert.Equal(t, "2024-06-01", attr.Value.String())
}

func TestCents(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{in: 0, want: "0.00"},
		{in: 5, want: "0.05"},
		{in: 9000, want: "90.00"},
		{in: 12345, want: "123.45"},
		{in: -250, want: "-2.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sl.Cents("amount", tt.in).Value.String())
	}
}
