package models

import "time"

// Mandate описывает SEPA-мандат на прямое списание.
type Mandate struct {
	ID            string     `json:"id"`
	MemberID      int64      `json:"member_id"`
	Reference     string     `json:"reference"`
	AccountHolder string     `json:"account_holder"`
	IBAN          string     `json:"iban"`
	BIC           string     `json:"bic,omitempty"`
	SignedAt      time.Time  `json:"signed_at"`
	RevokedAt     *time.Time `json:"revoked_at,omitempty"`
}

// BankDetails содержит банковские реквизиты для выпуска мандата.
type BankDetails struct {
	AccountHolder string `json:"account_holder" validate:"required,max=140"`
	IBAN          string `json:"iban" validate:"required,min=15,max=42"`
	BIC           string `json:"bic,omitempty" validate:"omitempty,alphanum,min=8,max=11"`
}
