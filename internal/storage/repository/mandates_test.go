package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/membership-engine/internal/models"
)

func TestStorage_Mandates(t *testing.T) {
	storage := setupTestDatabase(t)
	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	ann := factory.CreateMember(t, "Ann", "ann@example.com")
	m := models.Mandate{
		ID:            uuid.NewString(),
		MemberID:      ann,
		Reference:     "MNDT-1-ABCDEF012345",
		AccountHolder: "Ann Example",
		IBAN:          "DE89370400440532013000",
		SignedAt:      date(2024, 3, 1),
	}
	require.NoError(t, storage.CreateMandate(ctx, m))

	got, err := storage.GetMandate(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Reference, got.Reference)
	assert.Equal(t, "", got.BIC)
	assert.Nil(t, got.RevokedAt)

	t.Run("неизвестный участник", func(t *testing.T) {
		orphan := m
		orphan.ID = uuid.NewString()
		orphan.MemberID = ann + 1000
		orphan.Reference = "MNDT-X"
		err := storage.CreateMandate(ctx, orphan)
		assert.True(t, errors.Is(err, models.ErrNotFound))
	})

	t.Run("подсчёт договоров с прямым списанием", func(t *testing.T) {
		factory.CreateContract(t, ann, func(c *models.Contract) {
			c.PaymentMethod = models.PaymentDirectDebit
			c.SepaMandateID = &m.ID
		})
		factory.CreateContract(t, ann, func(c *models.Contract) {
			c.Status = models.StatusCancelled
			c.PaymentMethod = models.PaymentDirectDebit
			c.SepaMandateID = &m.ID
			c.CancellationReceivedDate = ptr(date(2024, 2, 1))
		})

		n, err := storage.CountContractsUsingMandate(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, n, "расторжение в прошлом мандат не держит")

		// Расторгнутый договор ещё списывает деньги до даты расторжения.
		factory.CreateContract(t, ann, func(c *models.Contract) {
			c.Status = models.StatusCancelled
			c.PaymentMethod = models.PaymentDirectDebit
			c.SepaMandateID = &m.ID
			c.EndDate = nil
			c.CancellationReceivedDate = ptr(time.Now().UTC().AddDate(0, 1, 0))
		})

		n, err = storage.CountContractsUsingMandate(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("отзыв сохраняет первую дату", func(t *testing.T) {
		require.NoError(t, storage.RevokeMandate(ctx, m.ID, date(2024, 4, 1)))
		require.NoError(t, storage.RevokeMandate(ctx, m.ID, date(2024, 5, 1)))

		got, err := storage.GetMandate(ctx, m.ID)
		require.NoError(t, err)
		require.NotNil(t, got.RevokedAt)
		assert.Equal(t, date(2024, 4, 1), got.RevokedAt.UTC())
	})

	t.Run("неизвестный мандат", func(t *testing.T) {
		_, err := storage.GetMandate(ctx, uuid.NewString())
		assert.True(t, errors.Is(err, models.ErrNotFound))
		assert.True(t, errors.Is(storage.RevokeMandate(ctx, uuid.NewString(), date(2024, 4, 1)), models.ErrNotFound))
	})
}
