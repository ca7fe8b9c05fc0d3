// Package billing строит прогноз начислений по условиям договора.
//
// Прогнозные строки не сохраняются: они вычисляются по требованию и сверяются
// с уже сохранёнными начислениями по календарному месяцу.
package billing

import (
	"iter"
	"slices"
	"time"

	"github.com/magabrotheeeer/membership-engine/internal/contract"
	"github.com/magabrotheeeer/membership-engine/internal/lib/month"
	"github.com/magabrotheeeer/membership-engine/internal/models"
)

// HorizonMonths ограничивает прогноз для бессрочных договоров.
const HorizonMonths = 12

// Project возвращает прогнозные начисления договора на дату asOf.
// Повторный вызов с теми же аргументами возвращает идентичный результат.
func Project(c models.Contract, existing []models.BillingEntry, asOf time.Time) []models.BillingEntry {
	out := make([]models.BillingEntry, 0)
	for e := range Sequence(c, existing, asOf) {
		out = append(out, e)
	}
	return out
}

// Sequence это ленивый вариант Project. Последовательность можно обходить повторно,
// каждый обход начинается заново.
func Sequence(c models.Contract, existing []models.BillingEntry, asOf time.Time) iter.Seq[models.BillingEntry] {
	return func(yield func(models.BillingEntry) bool) {
		day := month.Day(asOf)
		end := projectionEnd(c, day)
		booked := bookedMonths(c.ID, existing)
		step := c.BillingCycle.Months()

		for idx := firstMonth(c, day, step); ; idx += step {
			due := dueDate(idx, c.DueDayOfMonth)
			if due.After(end) {
				return
			}
			if _, ok := booked[month.Key(due)]; ok {
				continue
			}
			if inPause(c, due) {
				continue
			}
			if !yield(entryFor(c, due, step)) {
				return
			}
		}
	}
}

func projectionEnd(c models.Contract, asOf time.Time) time.Time {
	if end := contract.EffectiveEndDate(c, asOf); end != nil {
		return *end
	}
	return month.AddMonths(asOf, HorizonMonths)
}

// bookedMonths собирает месяцы, закрытые сохранёнными начислениями договора.
// Сравнение идёт по месяцу, а не по дню: оплата, проведённая задним числом, тоже закрывает месяц.
func bookedMonths(contractID int64, existing []models.BillingEntry) map[string]struct{} {
	booked := make(map[string]struct{}, len(existing)*2)
	for _, e := range existing {
		if e.Generated || e.ContractID != contractID {
			continue
		}
		if !e.DueDate.IsZero() {
			booked[month.Key(e.DueDate)] = struct{}{}
		}
		if !e.PeriodStart.IsZero() {
			booked[month.Key(e.PeriodStart)] = struct{}{}
		}
		if e.PaymentDate != nil {
			booked[month.Key(*e.PaymentDate)] = struct{}{}
		}
	}
	return booked
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

func dueDate(idx, dueDay int) time.Time {
	return month.Date(idx/12, time.Month(idx%12+1), dueDay)
}

// firstMonth возвращает индекс первого месяца прогноза: более поздний из месяца начала
// договора и месяца asOf, выровненный по циклу оплаты от месяца начала.
func firstMonth(c models.Contract, asOf time.Time, step int) int {
	startIdx := monthIndex(c.StartDate)
	idx := max(startIdx, monthIndex(asOf))
	if rem := (idx - startIdx) % step; rem != 0 {
		idx += step - rem
	}
	if dueDate(idx, c.DueDayOfMonth).Before(asOf) {
		idx += step
	}
	return idx
}

func inPause(c models.Contract, due time.Time) bool {
	if c.PauseFrom == nil || c.PauseUntil == nil {
		return false
	}
	return !due.Before(month.Day(*c.PauseFrom)) && !due.After(month.Day(*c.PauseUntil))
}

func entryFor(c models.Contract, due time.Time, step int) models.BillingEntry {
	e := models.BillingEntry{
		ContractID:  c.ID,
		PeriodStart: due,
		PeriodEnd:   month.AddMonths(due, step).AddDate(0, 0, -1),
		DueDate:     due,
		AmountCents: c.MonthlyAmountCents * int64(step),
		Generated:   true,
	}
	if c.Status == models.StatusCancelled && c.CancellationReceivedDate != nil {
		cancelled := month.Day(*c.CancellationReceivedDate)
		if month.Same(due, cancelled) {
			e.AmountCents = ProrateCents(c.MonthlyAmountCents, cancelled.Day(), month.DaysIn(cancelled.Year(), cancelled.Month()))
			e.PeriodEnd = cancelled
			e.Prorated = true
		}
	}
	return e
}

// ProrateCents считает round(amount × day / daysInMonth) с округлением половины вверх.
func ProrateCents(amount int64, day, daysInMonth int) int64 {
	if daysInMonth <= 0 || amount <= 0 || day <= 0 {
		return 0
	}
	num := amount * int64(day)
	den := int64(daysInMonth)
	q, r := num/den, num%den
	if 2*r >= den {
		q++
	}
	return q
}

// Merge объединяет сохранённые и прогнозные начисления в хронологическую ленту.
func Merge(persisted, projected []models.BillingEntry) []models.BillingEntry {
	out := make([]models.BillingEntry, 0, len(persisted)+len(projected))
	out = append(out, persisted...)
	out = append(out, projected...)
	slices.SortStableFunc(out, func(a, b models.BillingEntry) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		switch {
		case a.ContractID < b.ContractID:
			return -1
		case a.ContractID > b.ContractID:
			return 1
		}
		return 0
	})
	return out
}

// OpenAmount суммирует неоплаченные начисления.
func OpenAmount(entries []models.BillingEntry) int64 {
	var total int64
	for _, e := range entries {
		if !e.Paid {
			total += e.AmountCents
		}
	}
	return total
}
