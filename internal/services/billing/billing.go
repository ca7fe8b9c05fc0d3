// Package services собирает ленту начислений: сохранённые строки из хранилища
// и прогноз, вычисленный по условиям договора.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/membership-engine/internal/billing"
	"github.com/magabrotheeeer/membership-engine/internal/lib/metrics"
	"github.com/magabrotheeeer/membership-engine/internal/lib/month"
	"github.com/magabrotheeeer/membership-engine/internal/lib/sl"
	"github.com/magabrotheeeer/membership-engine/internal/models"
)

// Repository определяет методы хранилища, нужные для расчёта начислений.
type Repository interface {
	GetContract(ctx context.Context, id int64) (models.Contract, error)
	GetContractsForMember(ctx context.Context, memberID int64) ([]models.Contract, error)
	GetBillingEntriesForMember(ctx context.Context, memberID int64) ([]models.BillingEntry, error)
	GetBillingEntriesForContract(ctx context.Context, contractID int64) ([]models.BillingEntry, error)
	RecordBillingEntry(ctx context.Context, e models.BillingEntry) (int64, error)
}

// BillingService реализует чтение прогноза и запись фактических начислений.
type BillingService struct {
	repo Repository
	log  *slog.Logger
}

// NewBillingService создает новый экземпляр BillingService.
func NewBillingService(repo Repository, log *slog.Logger) *BillingService {
	return &BillingService{
		repo: repo,
		log:  log,
	}
}

// ProjectContract возвращает прогнозные начисления одного договора на дату asOf.
func (s *BillingService) ProjectContract(ctx context.Context, contractID int64, asOf time.Time) ([]models.BillingEntry, error) {
	const op = "services.billing.ProjectContract"

	var (
		c        models.Contract
		existing []models.BillingEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		c, err = s.repo.GetContract(gctx, contractID)
		return err
	})
	g.Go(func() error {
		var err error
		existing, err = s.repo.GetBillingEntriesForContract(gctx, contractID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	projected := billing.Project(c, existing, asOf)
	metrics.ProjectedEntries.Add(float64(len(projected)))
	s.log.Debug("contract projected",
		slog.Int64("contract_id", contractID),
		sl.Date("as_of", asOf),
		slog.Int("entries", len(projected)),
	)
	return projected, nil
}

// MemberOverview объединяет сохранённые начисления участника с прогнозом по всем его договорам.
func (s *BillingService) MemberOverview(ctx context.Context, memberID int64, asOf time.Time) (models.MemberBilling, error) {
	const op = "services.billing.MemberOverview"

	var (
		contracts []models.Contract
		persisted []models.BillingEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contracts, err = s.repo.GetContractsForMember(gctx, memberID)
		return err
	})
	g.Go(func() error {
		var err error
		persisted, err = s.repo.GetBillingEntriesForMember(gctx, memberID)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.MemberBilling{}, fmt.Errorf("%s: %w", op, err)
	}

	var projected []models.BillingEntry
	for _, c := range contracts {
		projected = append(projected, billing.Project(c, persisted, asOf)...)
	}
	metrics.ProjectedEntries.Add(float64(len(projected)))

	entries := billing.Merge(persisted, projected)
	return models.MemberBilling{
		MemberID:        memberID,
		AsOf:            month.Day(asOf),
		Entries:         entries,
		OpenAmountCents: billing.OpenAmount(entries),
	}, nil
}

// Record сохраняет фактическое начисление, полученное от платёжного контура.
func (s *BillingService) Record(ctx context.Context, req models.DummyBillingEntry) (int64, error) {
	const op = "services.billing.Record"

	entry, err := entryFrom(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.repo.GetContract(ctx, entry.ContractID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.RecordBillingEntry(ctx, entry)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("billing entry recorded",
		slog.Int64("id", id),
		slog.Int64("contract_id", entry.ContractID),
		sl.Date("due_date", entry.DueDate),
		sl.Cents("amount", entry.AmountCents),
	)
	return id, nil
}

func entryFrom(req models.DummyBillingEntry) (models.BillingEntry, error) {
	e := models.BillingEntry{
		ContractID:  req.ContractID,
		AmountCents: req.AmountCents,
		Paid:        req.Paid,
		Prorated:    req.Prorated,
	}
	dates := []struct {
		field string
		value string
		dst   *time.Time
	}{
		{"period_start", req.PeriodStart, &e.PeriodStart},
		{"period_end", req.PeriodEnd, &e.PeriodEnd},
		{"due_date", req.DueDate, &e.DueDate},
	}
	for _, d := range dates {
		t, err := month.Parse(d.value)
		if err != nil {
			return models.BillingEntry{}, models.NewValidationError(d.field, "expected format 2006-01-02")
		}
		*d.dst = t
	}
	if e.PeriodEnd.Before(e.PeriodStart) {
		return models.BillingEntry{}, models.NewValidationError("period_end", "must not be before period_start")
	}

	if req.PaymentDate != "" {
		t, err := month.Parse(req.PaymentDate)
		if err != nil {
			return models.BillingEntry{}, models.NewValidationError("payment_date", "expected format 2006-01-02")
		}
		e.PaymentDate = &t
	}
	if e.Paid && e.PaymentDate == nil {
		return models.BillingEntry{}, models.NewValidationError("payment_date", "is required for a paid entry")
	}
	return e, nil
}
