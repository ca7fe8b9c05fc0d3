// Package services выпускает и отзывает SEPA-мандаты на прямое списание.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/membership-engine/internal/models"
)

// Repository определяет методы хранилища мандатов.
type Repository interface {
	CreateMandate(ctx context.Context, m models.Mandate) error
	GetMandate(ctx context.Context, id string) (models.Mandate, error)
	RevokeMandate(ctx context.Context, id string, at time.Time) error
	CountContractsUsingMandate(ctx context.Context, mandateID string) (int, error)
}

// MandateService реализует выпуск и отзыв мандатов.
type MandateService struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// NewMandateService создает новый экземпляр MandateService.
func NewMandateService(repo Repository, log *slog.Logger) *MandateService {
	return &MandateService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Issue выпускает мандат по банковским реквизитам участника.
func (s *MandateService) Issue(ctx context.Context, memberID int64, details models.BankDetails) (models.Mandate, error) {
	const op = "services.mandate.Issue"

	iban, err := NormalizeIBAN(details.IBAN)
	if err != nil {
		return models.Mandate{}, fmt.Errorf("%s: %w", op, err)
	}
	holder := strings.TrimSpace(details.AccountHolder)
	if holder == "" {
		return models.Mandate{}, fmt.Errorf("%s: %w", op, models.NewValidationError("account_holder", "is required"))
	}

	id := uuid.New()
	m := models.Mandate{
		ID:            id.String(),
		MemberID:      memberID,
		Reference:     Reference(memberID, id),
		AccountHolder: holder,
		IBAN:          iban,
		BIC:           strings.ToUpper(strings.TrimSpace(details.BIC)),
		SignedAt:      s.now().UTC(),
	}
	if err := s.repo.CreateMandate(ctx, m); err != nil {
		return models.Mandate{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("mandate issued",
		slog.String("mandate_id", m.ID),
		slog.Int64("member_id", memberID),
		slog.String("iban", MaskIBAN(iban)),
	)
	return m, nil
}

// Revoke отзывает мандат. Мандат, по которому ещё идут прямые списания, отозвать нельзя.
func (s *MandateService) Revoke(ctx context.Context, mandateID string) error {
	const op = "services.mandate.Revoke"

	if _, err := uuid.Parse(mandateID); err != nil {
		return fmt.Errorf("%s: mandate %q: %w", op, mandateID, models.ErrNotFound)
	}
	if _, err := s.repo.GetMandate(ctx, mandateID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := s.repo.CountContractsUsingMandate(ctx, mandateID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n > 0 {
		return fmt.Errorf("%s: %w", op, models.NewValidationError("mandate_id",
			fmt.Sprintf("mandate is used by %d direct-debit contract(s)", n)))
	}

	if err := s.repo.RevokeMandate(ctx, mandateID, s.now().UTC()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("mandate revoked", slog.String("mandate_id", mandateID))
	return nil
}

// Reference строит мандатную ссылку. SEPA ограничивает её 35 символами,
// поэтому от uuid берутся первые 12 шестнадцатеричных знаков.
func Reference(memberID int64, id uuid.UUID) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	return fmt.Sprintf("MNDT-%d-%s", memberID, strings.ToUpper(hex[:12]))
}
