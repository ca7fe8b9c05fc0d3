// Package attendance вычисляет показатели регулярности посещений участника:
// процент посещаемости, серии, распределение по месяцам и дням недели.
package attendance

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/magabrotheeeer/membership-engine/internal/lib/month"
	"github.com/magabrotheeeer/membership-engine/internal/models"
)

const (
	// MaxStreakGapDays задаёт максимальный разрыв в днях, при котором посещения считаются одной серией.
	MaxStreakGapDays = 14
	// TrailingMonths задаёт глубину помесячной статистики.
	TrailingMonths   = 12
)

// Weekday хранит день недели в нумерации ISO: понедельник = 0, воскресенье = 6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return "unknown"
	}
	return weekdayNames[w]
}

// MarshalText отдаёт день недели в JSON названием.
func (w Weekday) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText разбирает название дня недели, записанное MarshalText.
func (w *Weekday) UnmarshalText(text []byte) error {
	for i, name := range weekdayNames {
		if name == string(text) {
			*w = Weekday(i)
			return nil
		}
	}
	return fmt.Errorf("attendance: unknown weekday %q", text)
}

func isoWeekday(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// MonthCount хранит количество посещений за календарный месяц.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Stats содержит результат расчёта. Нулевое значение соответствует отсутствию истории.
type Stats struct {
	TotalAttendances int          `json:"total_attendances"`
	TotalPossible    int          `json:"total_possible"`
	Quote            float64      `json:"quote"`
	MonthlyStats     []MonthCount `json:"monthly_stats"`
	CurrentStreak    int          `json:"current_streak"`
	BestStreak       int          `json:"best_streak"`
	Weekdays         [7]int       `json:"weekdays"`
	BestWeekday      *Weekday     `json:"best_weekday,omitempty"`
	WorstWeekday     *Weekday     `json:"worst_weekday,omitempty"`
	LongestPause     int          `json:"longest_pause"`
	AveragePerWeek   float64      `json:"average_per_week"`
}

// FilterByStyle оставляет записи одного направления. nil означает все направления.
func FilterByStyle(records []models.AttendanceRecord, styleID *int64) []models.AttendanceRecord {
	if styleID == nil {
		return records
	}
	out := make([]models.AttendanceRecord, 0, len(records))
	for _, r := range records {
		if r.StyleID != nil && *r.StyleID == *styleID {
			out = append(out, r)
		}
	}
	return out
}

// Compute считает статистику посещений на дату asOf. Записи позже asOf в историю не входят.
// Порядок входных записей не влияет на результат.
func Compute(records []models.AttendanceRecord, asOf time.Time) Stats {
	asOf = month.Day(asOf)

	var possible int
	present := make([]time.Time, 0, len(records))
	for _, r := range records {
		d := month.Day(r.Date)
		if d.After(asOf) {
			continue
		}
		possible++
		if r.Present {
			present = append(present, d)
		}
	}
	slices.SortFunc(present, func(a, b time.Time) int { return a.Compare(b) })

	s := Stats{
		TotalAttendances: len(present),
		TotalPossible:    possible,
		MonthlyStats:     monthly(present, asOf),
	}
	if possible > 0 {
		s.Quote = round(float64(len(present))/float64(possible)*100, 1)
	}
	if len(present) == 0 {
		return s
	}

	s.CurrentStreak = currentStreak(present, asOf)
	s.BestStreak = bestStreak(present)
	s.LongestPause = longestPause(present)

	for _, d := range present {
		s.Weekdays[isoWeekday(d)]++
	}
	s.BestWeekday, s.WorstWeekday = extremes(s.Weekdays)

	weeks := int(math.Ceil(float64(month.DaysBetween(present[0], asOf)) / 7))
	if weeks < 1 {
		weeks = 1
	}
	s.AveragePerWeek = float64(len(present)) / float64(weeks)
	return s
}

// monthly строит разреженную помесячную статистику за последние TrailingMonths месяцев.
func monthly(present []time.Time, asOf time.Time) []MonthCount {
	from := month.StartOf(month.AddMonths(asOf, -(TrailingMonths - 1)))
	counts := make(map[string]int, TrailingMonths)
	for _, d := range present {
		if !d.Before(from) {
			counts[month.Key(d)]++
		}
	}

	out := make([]MonthCount, 0, len(counts))
	for i := range TrailingMonths {
		key := month.Key(month.AddMonths(from, i))
		if n := counts[key]; n > 0 {
			out = append(out, MonthCount{Month: key, Count: n})
		}
	}
	return out
}

// currentStreak идёт от самого свежего посещения назад; present отсортирован по возрастанию.
func currentStreak(present []time.Time, asOf time.Time) int {
	last := len(present) - 1
	if month.DaysBetween(present[last], asOf) > MaxStreakGapDays {
		return 0
	}
	streak := 1
	for i := last - 1; i >= 0; i-- {
		if month.DaysBetween(present[i], present[i+1]) > MaxStreakGapDays {
			break
		}
		streak++
	}
	return streak
}

func bestStreak(present []time.Time) int {
	best, run := 1, 1
	for i := len(present) - 2; i >= 0; i-- {
		if month.DaysBetween(present[i], present[i+1]) > MaxStreakGapDays {
			run = 1
			continue
		}
		run++
		best = max(best, run)
	}
	return best
}

func longestPause(present []time.Time) int {
	var longest int
	for i := 1; i < len(present); i++ {
		longest = max(longest, month.DaysBetween(present[i-1], present[i]))
	}
	return longest
}

// extremes выбирает самый частый и самый редкий из посещавшихся дней недели.
// При равенстве побеждает более ранний день недели.
func extremes(counts [7]int) (best, worst *Weekday) {
	for i, n := range counts {
		if n == 0 {
			continue
		}
		w := Weekday(i)
		if best == nil || n > counts[*best] {
			best = &w
		}
		if worst == nil || n < counts[*worst] {
			worst = &w
		}
	}
	return best, worst
}

func round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
