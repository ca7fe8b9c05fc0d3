package models

import "time"

// AttendanceRecord описывает отметку о посещении тренировки. Данными владеет сервис чек-инов.
type AttendanceRecord struct {
	MemberID int64     `json:"member_id"`
	Date     time.Time `json:"date"`
	Present  bool      `json:"present"`
	StyleID  *int64    `json:"style_id,omitempty"`
}
