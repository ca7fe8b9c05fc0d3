// Package models содержит доменные структуры абонементного договора, записей начислений,
// посещений и SEPA-мандатов, а также DTO для приёма данных из JSON-запросов.
package models

import "time"

// ContractStatus описывает состояние договора.
type ContractStatus string

const (
	StatusActive    ContractStatus = "active"
	StatusPaused    ContractStatus = "paused"
	StatusCancelled ContractStatus = "cancelled"
	// StatusEnded не хранится в базе, а вычисляется по эффективной дате окончания.
	StatusEnded ContractStatus = "ended"
)

// BillingCycle задаёт периодичность списаний.
type BillingCycle string

const (
	CycleMonthly    BillingCycle = "monthly"
	CycleQuarterly  BillingCycle = "quarterly"
	CycleSemiannual BillingCycle = "semiannual"
	CycleAnnual     BillingCycle = "annual"
)

// Months возвращает длину цикла в месяцах. Неизвестный цикл считается месячным.
func (b BillingCycle) Months() int {
	switch b {
	case CycleQuarterly:
		return 3
	case CycleSemiannual:
		return 6
	case CycleAnnual:
		return 12
	default:
		return 1
	}
}

// PaymentMethod способ оплаты по договору.
type PaymentMethod string

const (
	PaymentDirectDebit  PaymentMethod = "direct_debit"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCash         PaymentMethod = "cash"
)

// Contract представляет абонементный договор участника.
// Даты хранятся с точностью до дня (UTC, полночь). Nullable-поля представлены указателями.
type Contract struct {
	ID                       int64          `json:"id"`
	MemberID                 int64          `json:"member_id"`
	TariffID                 int64          `json:"tariff_id"`
	Status                   ContractStatus `json:"status"`
	StartDate                time.Time      `json:"start_date"`
	EndDate                  *time.Time     `json:"end_date,omitempty"`
	MonthlyAmountCents       int64          `json:"monthly_amount_cents"`
	BillingCycle             BillingCycle   `json:"billing_cycle"`
	PaymentMethod            PaymentMethod  `json:"payment_method"`
	DueDayOfMonth            int            `json:"due_day_of_month"`
	NoticePeriodMonths       int            `json:"notice_period_months"`
	MinimumTermMonths        int            `json:"minimum_term_months"`
	AutoRenew                bool           `json:"auto_renew"`
	RenewalPeriodMonths      int            `json:"renewal_period_months"`
	CancellationReceivedDate *time.Time     `json:"cancellation_received_date,omitempty"`
	CancellationReason       *string        `json:"cancellation_reason,omitempty"`
	PauseFrom                *time.Time     `json:"pause_from,omitempty"`
	PauseUntil               *time.Time     `json:"pause_until,omitempty"`
	SepaMandateID            *string        `json:"sepa_mandate_id,omitempty"`
	AdmissionFeeCents        int64          `json:"admission_fee_cents"`
	Version                  int            `json:"version"`
	UpdatedAt                time.Time      `json:"updated_at"`
}

// ContractView описывает договор вместе с производными датами для отображения.
type ContractView struct {
	Contract
	EffectiveStatus                 ContractStatus `json:"effective_status"`
	EffectiveEndDate                *time.Time     `json:"effective_end_date,omitempty"`
	EarliestPermissibleCancellation *time.Time     `json:"earliest_permissible_cancellation,omitempty"`
}

// BillableContract описывает договор с контактными данными участника. Используется планировщиком напоминаний.
type BillableContract struct {
	Contract   Contract
	Email      string
	MemberName string
}

// DummyTransition используется для приёма параметров перехода из JSON-запроса.
// Даты приходят строками в формате 2006-01-02.
type DummyTransition struct {
	Action                   string `json:"action" validate:"required,oneof=pause cancel revoke_cancellation reactivate"`
	ExpectedVersion          int    `json:"expected_version" validate:"gte=0"`
	Months                   int    `json:"months,omitempty" validate:"omitempty,gte=1,lte=24"`
	CancellationReceivedDate string `json:"cancellation_received_date,omitempty"`
	CancellationReason       string `json:"cancellation_reason,omitempty" validate:"omitempty,max=500"`
}

// DummyRemoval параметры архивации договора.
type DummyRemoval struct {
	Reason          string `json:"reason" validate:"required,max=500"`
	EffectiveDate   string `json:"effective_date,omitempty"`
	ExpectedVersion int    `json:"expected_version" validate:"gte=0"`
}
