// Package contract реализует жизненный цикл абонементного договора: таблицу переходов
// между состояниями, вычисление продления и эффективной даты окончания.
//
// Все функции чистые: входной договор не изменяется, результат возвращается копией.
package contract

import (
	"fmt"
	"slices"
	"time"

	"github.com/magabrotheeeer/membership-engine/internal/lib/month"
	"github.com/magabrotheeeer/membership-engine/internal/models"
)

// DefaultRenewalPeriodMonths применяется, когда в договоре не указан период продления.
const DefaultRenewalPeriodMonths = 12

// Action задаёт административное действие над договором.
type Action string

const (
	ActionPause              Action = "pause"
	ActionCancel             Action = "cancel"
	ActionRevokeCancellation Action = "revoke_cancellation"
	ActionReactivate         Action = "reactivate"
)

// Params содержит параметры перехода. Используются только поля, нужные конкретному действию.
type Params struct {
	Months                   int
	CancellationReceivedDate *time.Time
	CancellationReason       string
}

type rule struct {
	from  []models.ContractStatus
	to    models.ContractStatus
	apply func(c *models.Contract, p Params, today time.Time) error
}

var transitions = map[Action]rule{
	ActionPause: {
		from:  []models.ContractStatus{models.StatusActive},
		to:    models.StatusPaused,
		apply: applyPause,
	},
	ActionCancel: {
		from:  []models.ContractStatus{models.StatusActive, models.StatusPaused},
		to:    models.StatusCancelled,
		apply: applyCancel,
	},
	ActionRevokeCancellation: {
		from: []models.ContractStatus{models.StatusCancelled},
		to:   models.StatusActive,
		apply: func(c *models.Contract, _ Params, _ time.Time) error {
			c.CancellationReceivedDate = nil
			c.CancellationReason = nil
			return nil
		},
	},
	ActionReactivate: {
		from: []models.ContractStatus{models.StatusPaused},
		to:   models.StatusActive,
		apply: func(c *models.Contract, _ Params, _ time.Time) error {
			c.PauseFrom = nil
			c.PauseUntil = nil
			return nil
		},
	},
}

// ParseAction проверяет название действия.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := transitions[a]; !ok {
		return "", models.NewValidationError("action", fmt.Sprintf("unknown action %q", s))
	}
	return a, nil
}

// Transition применяет действие к договору и возвращает новое состояние.
// Недопустимый переход или некорректные параметры возвращают *models.ValidationError,
// при этом исходный договор не изменяется.
func Transition(c models.Contract, action Action, p Params, today time.Time) (models.Contract, error) {
	r, ok := transitions[action]
	if !ok {
		return c, models.NewValidationError("action", fmt.Sprintf("unknown action %q", action))
	}
	today = month.Day(today)

	current := EffectiveStatus(c, today)
	if !slices.Contains(r.from, current) {
		return c, models.NewValidationError("status",
			fmt.Sprintf("cannot %s a contract in status %s", action, current))
	}

	next := c
	if err := r.apply(&next, p, today); err != nil {
		return c, err
	}
	next.Status = r.to

	if err := Validate(next); err != nil {
		return c, err
	}
	return next, nil
}

func applyPause(c *models.Contract, p Params, today time.Time) error {
	if p.Months < 1 {
		return models.NewValidationError("months", "pause duration must be at least one whole month")
	}
	// текущий месяц считается уже оплаченным
	from := month.FirstOfNext(today)
	until := month.EndOf(month.AddMonths(from, p.Months-1))
	c.PauseFrom = &from
	c.PauseUntil = &until
	return nil
}

func applyCancel(c *models.Contract, p Params, _ time.Time) error {
	if p.CancellationReceivedDate == nil {
		return models.NewValidationError("cancellation_received_date", "is required to cancel a contract")
	}
	received := month.Day(*p.CancellationReceivedDate)
	if received.Before(month.Day(c.StartDate)) {
		return models.NewValidationError("cancellation_received_date", "must not be before start_date")
	}
	c.CancellationReceivedDate = &received
	if p.CancellationReason != "" {
		reason := p.CancellationReason
		c.CancellationReason = &reason
	} else {
		c.CancellationReason = nil
	}
	c.PauseFrom = nil
	c.PauseUntil = nil
	return nil
}

// PrepareArchive подготавливает договор к архивации. Действующий договор сначала
// расторгается с датой effective; для уже расторгнутого или завершённого договора
// возвращается исходное состояние.
func PrepareArchive(c models.Contract, effective *time.Time, reason string, today time.Time) (models.Contract, error) {
	switch EffectiveStatus(c, today) {
	case models.StatusCancelled, models.StatusEnded:
		return c, nil
	}
	if effective == nil {
		return c, models.NewValidationError("effective_date", "is required to cancel an active contract before archiving")
	}
	return Transition(c, ActionCancel, Params{
		CancellationReceivedDate: effective,
		CancellationReason:       reason,
	}, today)
}
