// Package month содержит календарную арифметику, общую для договоров, начислений и посещений.
// Все функции работают с датами без времени: результат всегда полночь UTC.
package month

import (
	"time"
)

// Day отбрасывает время и часовой пояс, оставляя календарную дату в UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysIn возвращает количество дней в месяце.
func DaysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date строит дату, прижимая день к последнему дню месяца (31 февраля -> 28/29 февраля).
func Date(year int, m time.Month, day int) time.Time {
	first := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
	last := DaysIn(first.Year(), first.Month())
	if day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// AddMonths сдвигает дату на n календарных месяцев, сохраняя день там, где это возможно.
// В отличие от time.AddDate не переносит переполнение в следующий месяц.
func AddMonths(t time.Time, n int) time.Time {
	t = Day(t)
	return Date(t.Year(), t.Month()+time.Month(n), t.Day())
}

// StartOf возвращает первое число месяца.
func StartOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOf возвращает последний день месяца.
func EndOf(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), 31)
}

// FirstOfNext возвращает первое число следующего месяца.
func FirstOfNext(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

// Same сообщает, лежат ли даты в одном календарном месяце.
func Same(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// Key возвращает ключ месяца в формате 2006-01.
func Key(t time.Time) string {
	return t.Format("2006-01")
}

// DaysBetween возвращает количество целых дней от a до b (отрицательное, если b раньше a).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// Later возвращает более позднюю из двух дат.
func Later(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

// Layout задаёт формат календарной даты во внешних интерфейсах.
const Layout = time.DateOnly

// Parse разбирает дату в формате 2006-01-02.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}
