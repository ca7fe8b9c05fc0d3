// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель — упростить формирование структурированных полей лога:
// ошибок, календарных дат и денежных сумм.
package sl

import (
	"fmt"
	"log/slog"
	"time"
)

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Date пишет дату без времени в формате 2006-01-02.
func Date(key string, t time.Time) slog.Attr {
	return slog.String(key, t.Format(time.DateOnly))
}

// Cents пишет сумму в центах как десятичную строку: 12345 -> "123.45".
func Cents(key string, cents int64) slog.Attr {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return slog.String(key, fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100))
}
