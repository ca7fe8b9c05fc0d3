package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/membership-engine/internal/models"
)

// GetAttendanceForMember возвращает отметки посещений участника.
// styleID == nil означает все направления.
func (s *Storage) GetAttendanceForMember(ctx context.Context, memberID int64, styleID *int64) ([]models.AttendanceRecord, error) {
	const op = "storage.GetAttendanceForMember"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT member_id, date, present, style_id
			  FROM attendance
			  WHERE member_id = $1 AND ($2::BIGINT IS NULL OR style_id = $2)
			  ORDER BY date`
	rows, err := s.DB.QueryContext(ctx, query, memberID, styleID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]models.AttendanceRecord, 0)
	for rows.Next() {
		var r models.AttendanceRecord
		if err := rows.Scan(&r.MemberID, &r.Date, &r.Present, &r.StyleID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
