package contract

import (
	"time"

	"github.com/magabrotheeeer/membership-engine/internal/lib/month"
	"github.com/magabrotheeeer/membership-engine/internal/models"
)

// RenewalPeriod возвращает период автопродления договора в месяцах.
func RenewalPeriod(c models.Contract) int {
	if c.RenewalPeriodMonths > 0 {
		return c.RenewalPeriodMonths
	}
	return DefaultRenewalPeriodMonths
}

// RenewedEndDate возвращает дату окончания с учётом автопродления на дату today.
// Если договор не проверяли несколько периодов, продление применяется столько раз,
// сколько нужно, чтобы дата стала не раньше today.
func RenewedEndDate(c models.Contract, today time.Time) *time.Time {
	if c.EndDate == nil {
		return nil
	}
	end := month.Day(*c.EndDate)
	today = month.Day(today)
	if !c.AutoRenew || c.CancellationReceivedDate != nil || !end.Before(today) {
		return &end
	}

	// считаем от исходной даты, чтобы прижатие к концу месяца не накапливалось
	period := RenewalPeriod(c)
	for k := 1; ; k++ {
		candidate := month.AddMonths(end, k*period)
		if !candidate.Before(today) {
			return &candidate
		}
	}
}

// EffectiveEndDate возвращает дату, до которой договор порождает начисления:
// дата получения расторжения, иначе продлённая дата окончания. nil означает бессрочный договор.
func EffectiveEndDate(c models.Contract, today time.Time) *time.Time {
	if c.Status == models.StatusCancelled && c.CancellationReceivedDate != nil {
		d := month.Day(*c.CancellationReceivedDate)
		return &d
	}
	return RenewedEndDate(c, today)
}

// EffectiveStatus вычисляет состояние на дату today. Состояние ended не хранится:
// договор завершён, если эффективная дата окончания уже прошла.
func EffectiveStatus(c models.Contract, today time.Time) models.ContractStatus {
	if c.Status == models.StatusEnded {
		return models.StatusEnded
	}
	if end := EffectiveEndDate(c, today); end != nil && end.Before(month.Day(today)) {
		return models.StatusEnded
	}
	return c.Status
}

// EarliestPermissibleCancellation возвращает самую раннюю дату, к которой расторжение укладывается
// в срок уведомления. Используется только для отображения и аудита, переход cancel её не проверяет.
// Без даты окончания опорой служит окончание минимального срока; nil означает отсутствие ограничения.
func EarliestPermissibleCancellation(c models.Contract, today time.Time) *time.Time {
	var base time.Time
	switch {
	case c.EndDate != nil:
		base = *RenewedEndDate(c, today)
	case c.MinimumTermMonths > 0:
		base = month.AddMonths(c.StartDate, c.MinimumTermMonths)
	default:
		return nil
	}
	d := month.AddMonths(base, -c.NoticePeriodMonths)
	return &d
}

// View дополняет договор производными значениями на дату today.
func View(c models.Contract, today time.Time) models.ContractView {
	return models.ContractView{
		Contract:                        c,
		EffectiveStatus:                 EffectiveStatus(c, today),
		EffectiveEndDate:                EffectiveEndDate(c, today),
		EarliestPermissibleCancellation: EarliestPermissibleCancellation(c, today),
	}
}
