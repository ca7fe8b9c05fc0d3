package attendance

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/membership-engine/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func present(dates ...time.Time) []models.AttendanceRecord {
	out := make([]models.AttendanceRecord, 0, len(dates))
	for _, d := range dates {
		out = append(out, models.AttendanceRecord{MemberID: 1, Date: d, Present: true})
	}
	return out
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, date(2024, 6, 15))

	assert.Zero(t, s.TotalAttendances)
	assert.Zero(t, s.TotalPossible)
	assert.Zero(t, s.Quote)
	assert.Empty(t, s.MonthlyStats)
	assert.Zero(t, s.CurrentStreak)
	assert.Zero(t, s.BestStreak)
	assert.Equal(t, [7]int{}, s.Weekdays)
	assert.Nil(t, s.BestWeekday)
	assert.Nil(t, s.WorstWeekday)
	assert.Zero(t, s.LongestPause)
	assert.Zero(t, s.AveragePerWeek)
}

func TestCompute_OnlyAbsences(t *testing.T) {
	records := []models.AttendanceRecord{
		{MemberID: 1, Date: date(2024, 6, 1)},
		{MemberID: 1, Date: date(2024, 6, 8)},
	}
	s := Compute(records, date(2024, 6, 15))

	assert.Equal(t, 0, s.TotalAttendances)
	assert.Equal(t, 2, s.TotalPossible)
	assert.Equal(t, 0.0, s.Quote)
	assert.Zero(t, s.CurrentStreak)
	assert.Nil(t, s.BestWeekday)
}

func TestCompute_Streaks(t *testing.T) {
	records := present(date(2024, 6, 1), date(2024, 6, 8), date(2024, 6, 29))

	// Пример с серией 2/2 верен только для asOf раньше 2024-06-29: записи позже asOf
	// не входят ни в серии, ни в total_possible.
	t.Run("before the long gap", func(t *testing.T) {
		s := Compute(records, date(2024, 6, 15))
		assert.Equal(t, 2, s.TotalAttendances)
		assert.Equal(t, 2, s.CurrentStreak)
		assert.Equal(t, 2, s.BestStreak)
	})

	t.Run("after the long gap", func(t *testing.T) {
		s := Compute(records, date(2024, 6, 30))
		assert.Equal(t, 3, s.TotalAttendances)
		assert.Equal(t, 1, s.CurrentStreak)
		assert.Equal(t, 2, s.BestStreak)
		assert.Equal(t, 21, s.LongestPause)
	})

	t.Run("streak lapses when last visit is too old", func(t *testing.T) {
		s := Compute(records, date(2024, 7, 14))
		assert.Equal(t, 0, s.CurrentStreak)
		assert.Equal(t, 2, s.BestStreak)
	})

	t.Run("gap of exactly fourteen days keeps the streak", func(t *testing.T) {
		s := Compute(present(date(2024, 6, 1), date(2024, 6, 15)), date(2024, 6, 29))
		assert.Equal(t, 2, s.CurrentStreak)
		assert.Equal(t, 2, s.BestStreak)
	})
}

func TestCompute_Quote(t *testing.T) {
	tests := []struct {
		name    string
		present int
		absent  int
		want    float64
	}{
		{name: "two of three", present: 2, absent: 1, want: 66.7},
		{name: "one of eight", present: 1, absent: 7, want: 12.5},
		{name: "one of three", present: 1, absent: 2, want: 33.3},
		{name: "all", present: 4, absent: 0, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []models.AttendanceRecord
			day := date(2024, 1, 1)
			for i := 0; i < tt.present+tt.absent; i++ {
				records = append(records, models.AttendanceRecord{
					MemberID: 1,
					Date:     day.AddDate(0, 0, i),
					Present:  i < tt.present,
				})
			}
			s := Compute(records, date(2024, 6, 1))
			assert.InDelta(t, tt.want, s.Quote, 1e-9)
		})
	}
}

func TestCompute_MonthlyStatsAreSparseAndTrailing(t *testing.T) {
	records := present(
		date(2023, 6, 20),
		date(2023, 7, 1),
		date(2024, 1, 10),
		date(2024, 1, 20),
		date(2024, 6, 2),
	)
	records = append(records, models.AttendanceRecord{MemberID: 1, Date: date(2024, 3, 5)})

	s := Compute(records, date(2024, 6, 15))

	assert.Equal(t, []MonthCount{
		{Month: "2023-07", Count: 1},
		{Month: "2024-01", Count: 2},
		{Month: "2024-06", Count: 1},
	}, s.MonthlyStats)
	assert.Equal(t, 5, s.TotalAttendances)
	assert.Equal(t, 6, s.TotalPossible)
}

func TestCompute_Weekdays(t *testing.T) {
	// 2024-06-03 приходится на понедельник.
	records := present(
		date(2024, 6, 3),
		date(2024, 6, 5),
		date(2024, 6, 7),
		date(2024, 6, 10),
		date(2024, 6, 14),
	)
	s := Compute(records, date(2024, 6, 15))

	assert.Equal(t, [7]int{2, 0, 1, 0, 2, 0, 0}, s.Weekdays)
	require.NotNil(t, s.BestWeekday)
	require.NotNil(t, s.WorstWeekday)
	assert.Equal(t, Monday, *s.BestWeekday, "tie resolves to the earliest weekday")
	assert.Equal(t, Wednesday, *s.WorstWeekday)

	sunday := Compute(present(date(2024, 6, 9)), date(2024, 6, 9))
	assert.Equal(t, [7]int{0, 0, 0, 0, 0, 0, 1}, sunday.Weekdays)
	assert.Equal(t, Sunday, *sunday.BestWeekday)
	assert.Equal(t, Sunday, *sunday.WorstWeekday)
}

func TestCompute_AveragePerWeek(t *testing.T) {
	s := Compute(present(date(2024, 6, 1), date(2024, 6, 8), date(2024, 6, 29)), date(2024, 6, 30))
	assert.InDelta(t, 0.6, s.AveragePerWeek, 1e-9)

	single := Compute(present(date(2024, 6, 30)), date(2024, 6, 30))
	assert.InDelta(t, 1.0, single.AveragePerWeek, 1e-9)

	// 19 дней дают три неполные недели; среднее не округляется.
	thirds := Compute(present(date(2024, 6, 1), date(2024, 6, 2)), date(2024, 6, 20))
	assert.InDelta(t, 2.0/3.0, thirds.AveragePerWeek, 1e-12)
	assert.NotEqual(t, 0.67, thirds.AveragePerWeek)
}

// Записи позже asOf ещё не состоялись, поэтому total_possible их не считает.
func TestCompute_IgnoresFutureRecords(t *testing.T) {
	records := present(date(2024, 6, 1), date(2024, 6, 8), date(2024, 7, 1))
	records = append(records, models.AttendanceRecord{MemberID: 1, Date: date(2024, 8, 1)})

	s := Compute(records, date(2024, 6, 15))
	assert.Equal(t, 2, s.TotalAttendances)
	assert.Equal(t, 2, s.TotalPossible)
	assert.Equal(t, 100.0, s.Quote)
}

func TestCompute_OrderIndependent(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	start := date(2023, 1, 1)

	var records []models.AttendanceRecord
	for i := 0; i < 200; i++ {
		records = append(records, models.AttendanceRecord{
			MemberID: 1,
			Date:     start.AddDate(0, 0, r.Intn(540)),
			Present:  r.Intn(4) != 0,
		})
	}
	asOf := date(2024, 5, 20)
	want := Compute(records, asOf)

	for i := 0; i < 10; i++ {
		shuffled := append([]models.AttendanceRecord(nil), records...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, Compute(shuffled, asOf))
	}
	assert.LessOrEqual(t, want.CurrentStreak, want.BestStreak)
	assert.LessOrEqual(t, want.TotalAttendances, want.TotalPossible)
}

func TestFilterByStyle(t *testing.T) {
	salsa, tango := int64(1), int64(2)
	records := []models.AttendanceRecord{
		{MemberID: 1, Date: date(2024, 6, 1), Present: true, StyleID: &salsa},
		{MemberID: 1, Date: date(2024, 6, 2), Present: true, StyleID: &tango},
		{MemberID: 1, Date: date(2024, 6, 3), Present: true},
	}

	assert.Len(t, FilterByStyle(records, nil), 3)

	got := FilterByStyle(records, &tango)
	require.Len(t, got, 1)
	assert.Equal(t, date(2024, 6, 2), got[0].Date)

	other := int64(9)
	assert.Empty(t, FilterByStyle(records, &other))
}

func TestStats_JSONWeekdayNames(t *testing.T) {
	s := Compute(present(date(2024, 6, 3)), date(2024, 6, 3))
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"best_weekday":"monday"`)
}

func TestStats_JSONRoundTripKeepsWeekdays(t *testing.T) {
	want := Compute(present(date(2024, 6, 3), date(2024, 6, 4), date(2024, 6, 11)), date(2024, 6, 12))
	raw, err := json.Marshal(want)
	require.NoError(t, err)

	var got Stats
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, want, got)

	var w Weekday
	assert.Error(t, w.UnmarshalText([]byte("someday")))
}
