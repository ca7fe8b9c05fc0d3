package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/membership-engine/internal/migrations"
	"github.com/magabrotheeeer/membership-engine/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// setupTestDatabase поднимает PostgreSQL в контейнере и накатывает миграции
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("requires docker")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	root, err := filepath.Abs("../../..")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, filepath.Join(root, "migrations")))
	require.NoError(t, storage.CheckDatabaseReady(ctx))

	return storage
}

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateMember создает тестового участника
func (f *TestDataFactory) CreateMember(t *testing.T, name, email string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO members (name, email) VALUES ($1, $2) RETURNING id`, name, email).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateContract создает действующий договор с оплатой переводом
func (f *TestDataFactory) CreateContract(t *testing.T, memberID int64, modify func(c *models.Contract)) models.Contract {
	c := models.Contract{
		MemberID:            memberID,
		TariffID:            1,
		Status:              models.StatusActive,
		StartDate:           date(2024, 1, 1),
		EndDate:             ptr(date(2024, 12, 31)),
		MonthlyAmountCents:  9000,
		BillingCycle:        models.CycleMonthly,
		PaymentMethod:       models.PaymentBankTransfer,
		DueDayOfMonth:       1,
		NoticePeriodMonths:  3,
		MinimumTermMonths:   12,
		AutoRenew:           true,
		RenewalPeriodMonths: 12,
	}
	if modify != nil {
		modify(&c)
	}
	created, err := f.storage.CreateContract(context.Background(), c)
	require.NoError(t, err)
	return created
}

// CreateAttendance создает отметку о посещении
func (f *TestDataFactory) CreateAttendance(t *testing.T, memberID int64, day time.Time, present bool, styleID *int64) {
	_, err := f.storage.DB.Exec(`INSERT INTO attendance (member_id, date, present, style_id) VALUES ($1, $2, $3, $4)`,
		memberID, day, present, styleID)
	require.NoError(t, err)
}
