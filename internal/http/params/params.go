// Package params разбирает параметры пути и строки запроса.
package params

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/membership-engine/internal/lib/month"
	"github.com/magabrotheeeer/membership-engine/internal/models"
)

// ID читает положительный целочисленный параметр пути.
func ID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}

// AsOf читает дату as_of из строки запроса; без параметра используется now.
func AsOf(r *http.Request, now time.Time) (time.Time, error) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return month.Day(now), nil
	}
	t, err := month.Parse(raw)
	if err != nil {
		return time.Time{}, models.NewValidationError("as_of", "expected format 2006-01-02")
	}
	return t, nil
}

// OptionalInt64 читает необязательный целочисленный параметр строки запроса.
func OptionalInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, models.NewValidationError(name, "must be an integer")
	}
	return &v, nil
}
