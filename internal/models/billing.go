package models

import "time"

// BillingEntry описывает строку начисления по договору.
// Generated=true означает прогнозную строку, которая никогда не сохраняется.
type BillingEntry struct {
	ID          int64      `json:"id,omitempty"`
	ContractID  int64      `json:"contract_id"`
	PeriodStart time.Time  `json:"period_start"`
	PeriodEnd   time.Time  `json:"period_end"`
	DueDate     time.Time  `json:"due_date"`
	AmountCents int64      `json:"amount_cents"`
	Paid        bool       `json:"paid"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	Prorated    bool       `json:"prorated"`
	Generated   bool       `json:"generated"`
}

// MemberBilling объединяет сохранённые и прогнозные начисления участника.
type MemberBilling struct {
	MemberID        int64          `json:"member_id"`
	AsOf            time.Time      `json:"as_of"`
	Entries         []BillingEntry `json:"entries"`
	OpenAmountCents int64          `json:"open_amount_cents"`
}

// DummyBillingEntry используется для приёма фактического начисления из JSON-запроса.
type DummyBillingEntry struct {
	ContractID  int64  `json:"contract_id" validate:"required,gt=0"`
	PeriodStart string `json:"period_start" validate:"required"`
	PeriodEnd   string `json:"period_end" validate:"required"`
	DueDate     string `json:"due_date" validate:"required"`
	AmountCents int64  `json:"amount_cents" validate:"gte=0"`
	Paid        bool   `json:"paid"`
	PaymentDate string `json:"payment_date,omitempty"`
	Prorated    bool   `json:"prorated"`
}

// DueReminder описывает сообщение о предстоящем списании, публикуется в RabbitMQ.
type DueReminder struct {
	Email       string    `json:"email"`
	MemberName  string    `json:"member_name"`
	ContractID  int64     `json:"contract_id"`
	DueDate     time.Time `json:"due_date"`
	AmountCents int64     `json:"amount_cents"`
	Prorated    bool      `json:"prorated"`
}

// ContractEvent публикуется после каждого успешного перехода состояния договора.
type ContractEvent struct {
	ContractID int64          `json:"contract_id"`
	MemberID   int64          `json:"member_id"`
	Action     string         `json:"action"`
	Status     ContractStatus `json:"status"`
	Version    int            `json:"version"`
	OccurredAt time.Time      `json:"occurred_at"`
}
