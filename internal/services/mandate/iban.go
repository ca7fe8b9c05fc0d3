package services

import (
	"strings"

	"github.com/magabrotheeeer/membership-engine/internal/models"
)

const (
	minIBANLength = 15
	maxIBANLength = 34
)

// NormalizeIBAN убирает пробелы, приводит к верхнему регистру и проверяет контрольную сумму (ISO 13616, mod 97).
func NormalizeIBAN(raw string) (string, error) {
	iban := strings.ToUpper(strings.Join(strings.Fields(raw), ""))

	if len(iban) < minIBANLength || len(iban) > maxIBANLength {
		return "", models.NewValidationError("iban", "length must be between 15 and 34 characters")
	}
	for i, r := range iban {
		switch {
		case i < 2 && (r < 'A' || r > 'Z'):
			return "", models.NewValidationError("iban", "must start with a country code")
		case i >= 2 && i < 4 && (r < '0' || r > '9'):
			return "", models.NewValidationError("iban", "check digits must be numeric")
		case (r < '0' || r > '9') && (r < 'A' || r > 'Z'):
			return "", models.NewValidationError("iban", "must contain only letters and digits")
		}
	}
	if mod97(iban[4:]+iban[:4]) != 1 {
		return "", models.NewValidationError("iban", "checksum mismatch")
	}
	return iban, nil
}

// mod97 считает остаток по частям, буквы заменяются числами 10..35.
func mod97(s string) int {
	rem := 0
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			v := int(r-'A') + 10
			rem = (rem*100 + v) % 97
			continue
		}
		rem = (rem*10 + int(r-'0')) % 97
	}
	return rem
}

// MaskIBAN оставляет код страны и последние четыре знака.
func MaskIBAN(iban string) string {
	if len(iban) <= 8 {
		return strings.Repeat("*", len(iban))
	}
	return iban[:2] + strings.Repeat("*", len(iban)-6) + iban[len(iban)-4:]
}
