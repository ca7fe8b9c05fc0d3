// Package services оркестрирует жизненный цикл договоров: читает договор, применяет переход,
// сохраняет результат с проверкой версии, сбрасывает кеш и публикует событие.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/membership-engine/internal/cache"
	"github.com/magabrotheeeer/membership-engine/internal/contract"
	"github.com/magabrotheeeer/membership-engine/internal/lib/metrics"
	"github.com/magabrotheeeer/membership-engine/internal/lib/month"
	"github.com/magabrotheeeer/membership-engine/internal/lib/sl"
	"github.com/magabrotheeeer/membership-engine/internal/models"
	"github.com/magabrotheeeer/membership-engine/internal/rabbitmq"
)

// actionArchive обозначает действие в событии об архивации договора.
const actionArchive = "archive"

// ContractRepository определяет методы для работы с договорами в хранилище.
type ContractRepository interface {
	GetContract(ctx context.Context, id int64) (models.Contract, error)
	GetContractsForMember(ctx context.Context, memberID int64) ([]models.Contract, error)
	// UpdateContract сохраняет договор, если версия в базе равна expectedVersion.
	UpdateContract(ctx context.Context, c models.Contract, expectedVersion int) (models.Contract, error)
	ArchiveContract(ctx context.Context, c models.Contract, reason string, expectedVersion int) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// EventPublisher публикует события об изменении договоров.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// ContractService реализует операции над договорами.
type ContractService struct {
	repo   ContractRepository
	cache  Cache
	events EventPublisher
	log    *slog.Logger
	ttl    time.Duration
	now    func() time.Time
}

// NewContractService создает новый экземпляр ContractService.
func NewContractService(repo ContractRepository, cache Cache, events EventPublisher, log *slog.Logger, ttl time.Duration) *ContractService {
	return &ContractService{
		repo:   repo,
		cache:  cache,
		events: events,
		log:    log,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *ContractService) today() time.Time {
	return month.Day(s.now())
}

// ListForMember возвращает договоры участника с вычисленными статусом и датами на сегодня.
// В кеше хранятся сами договоры, производные поля пересчитываются на каждый запрос.
func (s *ContractService) ListForMember(ctx context.Context, memberID int64) ([]models.ContractView, error) {
	const op = "services.contract.ListForMember"

	key := cache.MemberContractsKey(memberID)
	var contracts []models.Contract
	found, err := s.cache.Get(ctx, key, &contracts)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	metrics.CacheLookups.WithLabelValues("contracts", hitOrMiss(found)).Inc()

	if !found {
		contracts, err = s.repo.GetContractsForMember(ctx, memberID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := s.cache.Set(ctx, key, contracts, s.ttl); err != nil {
			s.log.Warn("failed to cache contracts", slog.String("key", key), sl.Err(err))
		}
	}

	today := s.today()
	views := make([]models.ContractView, 0, len(contracts))
	for _, c := range contracts {
		views = append(views, contract.View(c, today))
	}
	return views, nil
}

// Transition применяет административное действие к договору.
// Версия в запросе должна совпадать с текущей версией договора.
func (s *ContractService) Transition(ctx context.Context, id int64, req models.DummyTransition) (models.ContractView, error) {
	const op = "services.contract.Transition"

	action, err := contract.ParseAction(req.Action)
	if err != nil {
		return models.ContractView{}, fmt.Errorf("%s: %w", op, err)
	}
	params, err := paramsFrom(req)
	if err != nil {
		return models.ContractView{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := s.transition(ctx, id, req.ExpectedVersion, action, params)
	metrics.ContractTransitions.WithLabelValues(string(action), metrics.Result(err)).Inc()
	if err != nil {
		return models.ContractView{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("contract transitioned",
		slog.Int64("contract_id", saved.ID),
		slog.String("action", string(action)),
		slog.String("status", string(saved.Status)),
		slog.Int("version", saved.Version),
	)
	s.afterWrite(ctx, saved, string(action))
	return contract.View(saved, s.today()), nil
}

func (s *ContractService) transition(ctx context.Context, id int64, expected int, action contract.Action, p contract.Params) (models.Contract, error) {
	current, err := s.repo.GetContract(ctx, id)
	if err != nil {
		return models.Contract{}, err
	}
	if current.Version != expected {
		return models.Contract{}, models.ErrConcurrencyConflict
	}

	next, err := contract.Transition(current, action, p, s.today())
	if err != nil {
		return models.Contract{}, err
	}
	return s.repo.UpdateContract(ctx, next, expected)
}

// Remove архивирует договор. Действующий договор сначала расторгается с датой effective_date.
func (s *ContractService) Remove(ctx context.Context, id int64, req models.DummyRemoval) error {
	const op = "services.contract.Remove"

	var effective *time.Time
	if req.EffectiveDate != "" {
		d, err := month.Parse(req.EffectiveDate)
		if err != nil {
			return fmt.Errorf("%s: %w", op, models.NewValidationError("effective_date", "expected format 2006-01-02"))
		}
		effective = &d
	}

	current, err := s.repo.GetContract(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if current.Version != req.ExpectedVersion {
		return fmt.Errorf("%s: %w", op, models.ErrConcurrencyConflict)
	}

	prepared, err := contract.PrepareArchive(current, effective, req.Reason, s.today())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	err = s.repo.ArchiveContract(ctx, prepared, req.Reason, req.ExpectedVersion)
	metrics.ContractTransitions.WithLabelValues(actionArchive, metrics.Result(err)).Inc()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("contract archived", slog.Int64("contract_id", id), slog.String("reason", req.Reason))
	prepared.Version = req.ExpectedVersion + 1
	s.afterWrite(ctx, prepared, actionArchive)
	return nil
}

// afterWrite сбрасывает кеш участника и публикует событие. Ошибки только логируются:
// договор уже сохранён.
func (s *ContractService) afterWrite(ctx context.Context, c models.Contract, action string) {
	key := cache.MemberContractsKey(c.MemberID)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", key), sl.Err(err))
	}

	event := models.ContractEvent{
		ContractID: c.ID,
		MemberID:   c.MemberID,
		Action:     action,
		Status:     c.Status,
		Version:    c.Version,
		OccurredAt: s.now().UTC(),
	}
	if err := s.events.Publish(ctx, rabbitmq.RoutingContractEvent, event); err != nil {
		s.log.Warn("failed to publish contract event", slog.Int64("contract_id", c.ID), sl.Err(err))
	}
}

func paramsFrom(req models.DummyTransition) (contract.Params, error) {
	p := contract.Params{
		Months:             req.Months,
		CancellationReason: req.CancellationReason,
	}
	if req.CancellationReceivedDate != "" {
		d, err := month.Parse(req.CancellationReceivedDate)
		if err != nil {
			return contract.Params{}, models.NewValidationError("cancellation_received_date", "expected format 2006-01-02")
		}
		p.CancellationReceivedDate = &d
	}
	return p, nil
}

func hitOrMiss(found bool) string {
	if found {
		return "hit"
	}
	return "miss"
}

// IsConflict сообщает, что запись отклонена из-за устаревшей версии.
func IsConflict(err error) bool {
	return errors.Is(err, models.ErrConcurrencyConflict)
}
