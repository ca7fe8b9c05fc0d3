package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound возвращается, когда договор, участник или мандат не найден.
	ErrNotFound = errors.New("not found")
	// ErrConcurrencyConflict возвращается при обновлении по устаревшей версии.
	ErrConcurrencyConflict = errors.New("concurrency conflict: stale version")
)

// ValidationError описывает недопустимый переход или некорректное поле.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// NewValidationError создаёт ошибку валидации для поля.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation сообщает, является ли err (или обёрнутая в ней ошибка) ошибкой валидации.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
