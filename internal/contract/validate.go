package contract

import (
	"github.com/magabrotheeeer/membership-engine/internal/models"
)

// Validate проверяет инварианты договора и возвращает первую найденную ошибку.
func Validate(c models.Contract) error {
	switch c.Status {
	case models.StatusActive, models.StatusPaused, models.StatusCancelled, models.StatusEnded:
	default:
		return models.NewValidationError("status", "unknown status "+string(c.Status))
	}
	if c.DueDayOfMonth < 1 || c.DueDayOfMonth > 28 {
		return models.NewValidationError("due_day_of_month", "must be between 1 and 28")
	}
	if c.MonthlyAmountCents < 0 {
		return models.NewValidationError("monthly_amount_cents", "must not be negative")
	}
	if c.AdmissionFeeCents < 0 {
		return models.NewValidationError("admission_fee_cents", "must not be negative")
	}
	if c.NoticePeriodMonths < 0 || c.MinimumTermMonths < 0 || c.RenewalPeriodMonths < 0 {
		return models.NewValidationError("term", "month counts must not be negative")
	}
	if c.PaymentMethod == models.PaymentDirectDebit && (c.SepaMandateID == nil || *c.SepaMandateID == "") {
		return models.NewValidationError("sepa_mandate_id", "is required for direct debit")
	}
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return models.NewValidationError("end_date", "must not be before start_date")
	}
	if c.Status == models.StatusPaused {
		if c.PauseFrom == nil || c.PauseUntil == nil {
			return models.NewValidationError("pause_from", "is required for a paused contract")
		}
		if !c.PauseFrom.Before(*c.PauseUntil) {
			return models.NewValidationError("pause_until", "must be after pause_from")
		}
	}
	if c.Status == models.StatusCancelled && c.CancellationReceivedDate == nil {
		return models.NewValidationError("cancellation_received_date", "is required for a cancelled contract")
	}
	if c.Status != models.StatusCancelled && c.CancellationReceivedDate != nil {
		return models.NewValidationError("cancellation_received_date", "must be empty unless the contract is cancelled")
	}
	return nil
}
