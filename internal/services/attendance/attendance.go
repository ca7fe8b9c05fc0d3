// Package services отдаёт статистику посещений участника с кешированием в Redis.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/membership-engine/internal/attendance"
	"github.com/magabrotheeeer/membership-engine/internal/cache"
	"github.com/magabrotheeeer/membership-engine/internal/lib/metrics"
	"github.com/magabrotheeeer/membership-engine/internal/lib/month"
	"github.com/magabrotheeeer/membership-engine/internal/lib/sl"
	"github.com/magabrotheeeer/membership-engine/internal/models"
)

// Repository читает отметки о посещениях.
type Repository interface {
	GetAttendanceForMember(ctx context.Context, memberID int64, styleID *int64) ([]models.AttendanceRecord, error)
}

// Cache описывает методы кеша, используемые сервисом.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// AttendanceService вычисляет статистику посещений.
type AttendanceService struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	ttl   time.Duration
}

// NewAttendanceService создает новый экземпляр AttendanceService.
func NewAttendanceService(repo Repository, cache Cache, log *slog.Logger, ttl time.Duration) *AttendanceService {
	return &AttendanceService{
		repo:  repo,
		cache: cache,
		log:   log,
		ttl:   ttl,
	}
}

// Stats возвращает статистику участника на дату asOf, опционально по одному направлению.
func (s *AttendanceService) Stats(ctx context.Context, memberID int64, styleID *int64, asOf time.Time) (attendance.Stats, error) {
	const op = "services.attendance.Stats"

	asOf = month.Day(asOf)
	key := cache.AttendanceStatsKey(memberID, styleID, asOf)

	var stats attendance.Stats
	found, err := s.cache.Get(ctx, key, &stats)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	metrics.CacheLookups.WithLabelValues("attendance", hitOrMiss(found)).Inc()
	if found {
		return stats, nil
	}

	records, err := s.repo.GetAttendanceForMember(ctx, memberID, styleID)
	if err != nil {
		return attendance.Stats{}, fmt.Errorf("%s: %w", op, err)
	}
	stats = attendance.Compute(attendance.FilterByStyle(records, styleID), asOf)

	if err := s.cache.Set(ctx, key, stats, s.ttl); err != nil {
		s.log.Warn("failed to cache attendance stats", slog.String("key", key), sl.Err(err))
	}
	return stats, nil
}

// Refresh сбрасывает все закешированные снимки статистики участника.
func (s *AttendanceService) Refresh(ctx context.Context, memberID int64) error {
	const op = "services.attendance.Refresh"

	if err := s.cache.InvalidatePrefix(ctx, cache.AttendancePrefix(memberID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("attendance stats invalidated", slog.Int64("member_id", memberID))
	return nil
}

func hitOrMiss(found bool) string {
	if found {
		return "hit"
	}
	return "miss"
}
