// Package services периодически ищет начисления, срок которых наступает через заданное
// число дней, и публикует напоминания в RabbitMQ.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/membership-engine/internal/billing"
	"github.com/magabrotheeeer/membership-engine/internal/lib/metrics"
	"github.com/magabrotheeeer/membership-engine/internal/lib/month"
	"github.com/magabrotheeeer/membership-engine/internal/lib/sl"
	"github.com/magabrotheeeer/membership-engine/internal/models"
	"github.com/magabrotheeeer/membership-engine/internal/rabbitmq"
)

// fetchConcurrency ограничивает число одновременных запросов к базе за начислениями.
const fetchConcurrency = 8

// BillingRepository отдаёт договоры к списанию и их начисления.
type BillingRepository interface {
	ListBillableContracts(ctx context.Context) ([]models.BillableContract, error)
	GetBillingEntriesForContract(ctx context.Context, contractID int64) ([]models.BillingEntry, error)
}

// Publisher публикует сообщения в обменник уведомлений.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// SchedulerService находит ближайшие списания и ставит напоминания в очередь.
type SchedulerService struct {
	repo     BillingRepository
	pub      Publisher
	log      *slog.Logger
	leadDays int
	now      func() time.Time

	mu   sync.Mutex
	sent map[string]time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo BillingRepository, pub Publisher, log *slog.Logger, leadDays int) *SchedulerService {
	return &SchedulerService{
		repo:     repo,
		pub:      pub,
		log:      log,
		leadDays: leadDays,
		now:      time.Now,
		sent:     make(map[string]time.Time),
	}
}

// Run выполняет проход сразу и затем с периодом interval, пока не отменён ctx.
func (s *SchedulerService) Run(ctx context.Context, interval time.Duration) {
	s.runAndLog(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runAndLog(ctx)
		}
	}
}

func (s *SchedulerService) runAndLog(ctx context.Context) {
	n, err := s.RunOnce(ctx)
	if err != nil {
		s.log.Error("reminder run failed", sl.Err(err))
		return
	}
	s.log.Info("reminder run finished", slog.Int("published", n))
}

// RunOnce публикует напоминания о начислениях со сроком today+leadDays и возвращает их число.
// Напоминание по одному договору и сроку публикуется один раз за время жизни процесса.
func (s *SchedulerService) RunOnce(ctx context.Context) (int, error) {
	const op = "services.scheduler.RunOnce"

	today := month.Day(s.now())
	target := today.AddDate(0, 0, s.leadDays)
	s.prune(today)

	contracts, err := s.repo.ListBillableContracts(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if len(contracts) == 0 {
		s.log.Info("no billable contracts found")
		return 0, nil
	}

	var (
		mu        sync.Mutex
		reminders []models.DueReminder
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for _, bc := range contracts {
		g.Go(func() error {
			entries, err := s.repo.GetBillingEntriesForContract(gctx, bc.Contract.ID)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.log.Warn("failed to load billing entries", slog.Int64("contract_id", bc.Contract.ID), sl.Err(err))
				return nil
			}
			if r, ok := dueOn(bc, entries, today, target); ok {
				mu.Lock()
				reminders = append(reminders, r)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	published := 0
	for _, r := range reminders {
		key := fmt.Sprintf("%d:%s", r.ContractID, r.DueDate.Format(month.Layout))
		if s.alreadySent(key) {
			continue
		}
		err := s.pub.Publish(ctx, rabbitmq.RoutingDueReminder, r)
		metrics.RemindersPublished.WithLabelValues(metrics.Result(err)).Inc()
		if err != nil {
			s.log.Error("failed to publish reminder", slog.Int64("contract_id", r.ContractID), sl.Err(err))
			continue
		}
		s.markSent(key, r.DueDate)
		published++
	}
	return published, nil
}

// dueOn ищет прогнозное начисление договора со сроком target.
func dueOn(bc models.BillableContract, entries []models.BillingEntry, today, target time.Time) (models.DueReminder, bool) {
	for e := range billing.Sequence(bc.Contract, entries, today) {
		if e.DueDate.After(target) {
			break
		}
		if e.DueDate.Equal(target) {
			return models.DueReminder{
				Email:       bc.Email,
				MemberName:  bc.MemberName,
				ContractID:  bc.Contract.ID,
				DueDate:     e.DueDate,
				AmountCents: e.AmountCents,
				Prorated:    e.Prorated,
			}, true
		}
	}
	return models.DueReminder{}, false
}

func (s *SchedulerService) alreadySent(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sent[key]
	return ok
}

func (s *SchedulerService) markSent(key string, due time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent[key] = due
}

// prune забывает напоминания, срок которых уже прошёл.
func (s *SchedulerService) prune(today time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, due := range s.sent {
		if due.Before(today) {
			delete(s.sent, key)
		}
	}
}
