package cache

import (
	"fmt"
	"time"
)

// MemberContractsKey возвращает ключ списка договоров участника.
func MemberContractsKey(memberID int64) string {
	return fmt.Sprintf("member:%d:contracts", memberID)
}

// AttendancePrefix возвращает общий префикс всех снимков статистики посещений участника.
func AttendancePrefix(memberID int64) string {
	return fmt.Sprintf("member:%d:attendance:", memberID)
}

// AttendanceStatsKey возвращает ключ статистики посещений на дату с фильтром по направлению.
func AttendanceStatsKey(memberID int64, styleID *int64, asOf time.Time) string {
	style := "all"
	if styleID != nil {
		style = fmt.Sprintf("%d", *styleID)
	}
	return fmt.Sprintf("%s%s:%s", AttendancePrefix(memberID), style, asOf.Format(time.DateOnly))
}
