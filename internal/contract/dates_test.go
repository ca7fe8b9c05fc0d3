package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/membership-engine/internal/models"
)

func TestRenewedEndDate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *models.Contract)
		today  time.Time
		want   *time.Time
	}{
		{
			name:  "not yet expired",
			today: date(2024, 6, 1),
			want:  ptr(date(2024, 12, 31)),
		},
		{
			name:  "expired once",
			today: date(2025, 1, 15),
			want:  ptr(date(2025, 12, 31)),
		},
		{
			name:  "unreviewed for several periods",
			today: date(2027, 3, 1),
			want:  ptr(date(2027, 12, 31)),
		},
		{
			name:   "short renewal period loops",
			modify: func(c *models.Contract) { c.RenewalPeriodMonths = 1 },
			today:  date(2025, 3, 15),
			want:   ptr(date(2025, 3, 31)),
		},
		{
			name:   "month-end does not drift",
			modify: func(c *models.Contract) { c.EndDate = ptr(date(2024, 1, 31)); c.RenewalPeriodMonths = 1 },
			today:  date(2024, 3, 30),
			want:   ptr(date(2024, 3, 31)),
		},
		{
			name:   "default period when unset",
			modify: func(c *models.Contract) { c.RenewalPeriodMonths = 0 },
			today:  date(2025, 2, 1),
			want:   ptr(date(2025, 12, 31)),
		},
		{
			name:   "no auto renew",
			modify: func(c *models.Contract) { c.AutoRenew = false },
			today:  date(2025, 2, 1),
			want:   ptr(date(2024, 12, 31)),
		},
		{
			name:   "open ended",
			modify: func(c *models.Contract) { c.EndDate = nil },
			today:  date(2025, 2, 1),
			want:   nil,
		},
		{
			name:   "end equals today is not renewed",
			today:  date(2024, 12, 31),
			want:   ptr(date(2024, 12, 31)),
			modify: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := baseContract()
			if tt.modify != nil {
				tt.modify(&c)
			}
			got := RenewedEndDate(c, tt.today)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestRenewedEndDate_NotRenewedAfterCancellation(t *testing.T) {
	c := baseContract()
	cancelled, err := Transition(c, ActionCancel, Params{CancellationReceivedDate: ptr(date(2024, 10, 1))}, date(2024, 9, 1))
	require.NoError(t, err)

	got := RenewedEndDate(cancelled, date(2025, 3, 1))
	require.NotNil(t, got)
	assert.Equal(t, date(2024, 12, 31), *got)
}

func TestEffectiveStatus(t *testing.T) {
	c := baseContract()
	assert.Equal(t, models.StatusActive, EffectiveStatus(c, date(2026, 1, 1)), "auto renew keeps contract alive")

	c.AutoRenew = false
	assert.Equal(t, models.StatusActive, EffectiveStatus(c, date(2024, 12, 31)))
	assert.Equal(t, models.StatusEnded, EffectiveStatus(c, date(2025, 1, 1)))

	cancelled, err := Transition(baseContract(), ActionCancel, Params{CancellationReceivedDate: ptr(date(2024, 6, 10))}, date(2024, 5, 1))
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, EffectiveStatus(cancelled, date(2024, 6, 10)))
	assert.Equal(t, models.StatusEnded, EffectiveStatus(cancelled, date(2024, 6, 11)))

	open := baseContract()
	open.EndDate = nil
	assert.Equal(t, models.StatusActive, EffectiveStatus(open, date(2030, 1, 1)))
}

func TestEarliestPermissibleCancellation(t *testing.T) {
	c := baseContract()
	got := EarliestPermissibleCancellation(c, date(2024, 3, 1))
	require.NotNil(t, got)
	assert.Equal(t, date(2024, 9, 30), *got)

	open := baseContract()
	open.EndDate = nil
	open.MinimumTermMonths = 6
	open.NoticePeriodMonths = 1
	got = EarliestPermissibleCancellation(open, date(2024, 3, 1))
	require.NotNil(t, got)
	assert.Equal(t, date(2024, 6, 1), *got)

	open.MinimumTermMonths = 0
	assert.Nil(t, EarliestPermissibleCancellation(open, date(2024, 3, 1)))
}

func TestView(t *testing.T) {
	v := View(baseContract(), date(2024, 3, 1))
	assert.Equal(t, models.StatusActive, v.EffectiveStatus)
	require.NotNil(t, v.EffectiveEndDate)
	assert.Equal(t, date(2024, 12, 31), *v.EffectiveEndDate)
	require.NotNil(t, v.EarliestPermissibleCancellation)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(c *models.Contract)
		wantField string
	}{
		{name: "valid", modify: func(_ *models.Contract) {}},
		{name: "due day zero", modify: func(c *models.Contract) { c.DueDayOfMonth = 0 }, wantField: "due_day_of_month"},
		{name: "due day 29", modify: func(c *models.Contract) { c.DueDayOfMonth = 29 }, wantField: "due_day_of_month"},
		{name: "negative amount", modify: func(c *models.Contract) { c.MonthlyAmountCents = -1 }, wantField: "monthly_amount_cents"},
		{name: "direct debit without mandate", modify: func(c *models.Contract) { c.PaymentMethod = models.PaymentDirectDebit }, wantField: "sepa_mandate_id"},
		{name: "end before start", modify: func(c *models.Contract) { c.EndDate = ptr(date(2023, 1, 1)) }, wantField: "end_date"},
		{name: "paused without window", modify: func(c *models.Contract) { c.Status = models.StatusPaused }, wantField: "pause_from"},
		{name: "paused with inverted window", modify: func(c *models.Contract) {
			c.Status = models.StatusPaused
			c.PauseFrom = ptr(date(2024, 5, 1))
			c.PauseUntil = ptr(date(2024, 4, 30))
		}, wantField: "pause_until"},
		{name: "cancelled without date", modify: func(c *models.Contract) { c.Status = models.StatusCancelled }, wantField: "cancellation_received_date"},
		{name: "active with cancellation date", modify: func(c *models.Contract) { c.CancellationReceivedDate = ptr(date(2024, 5, 1)) }, wantField: "cancellation_received_date"},
		{name: "unknown status", modify: func(c *models.Contract) { c.Status = "frozen" }, wantField: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := baseContract()
			tt.modify(&c)
			err := Validate(c)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *models.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}
