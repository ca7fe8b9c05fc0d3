package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/membership-engine/internal/lib/sl"
)

// ErrPermanent помечает ошибку, после которой повторная доставка не поможет.
// Такое сообщение отклоняется без возврата в очередь.
var ErrPermanent = errors.New("permanent failure")

// Handler обрабатывает тело сообщения. Ошибка возвращает сообщение в очередь,
// кроме ошибок, обёртывающих ErrPermanent.
type Handler func(ctx context.Context, body []byte) error

// ConsumerMessage запускает потребителя очереди. Одновременно обрабатывается не больше maxInFlight сообщений.
// Возвращает управление сразу; потребление прекращается при отмене ctx или закрытии канала.
func ConsumerMessage(ctx context.Context, ch *amqp.Channel, queueName string, maxInFlight int, log *slog.Logger, handler Handler) error {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log = log.With(slog.String("queue", queueName))
	sem := make(chan struct{}, max(maxInFlight, 1))
	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(d amqp.Delivery) {
					defer func() { <-sem }()
					handleDelivery(ctx, d, log, handler)
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// handleDelivery вызывает handler и подтверждает, возвращает или отбрасывает сообщение.
func handleDelivery(ctx context.Context, d amqp.Delivery, log *slog.Logger, handler Handler) {
	err := handler(ctx, d.Body)
	switch {
	case err == nil:
		if ackErr := d.Ack(false); ackErr != nil {
			log.Error("failed to ack message", sl.Err(ackErr))
		}
	case errors.Is(err, ErrPermanent):
		log.Error("handler failed permanently, message dropped", sl.Err(err))
		if nackErr := d.Nack(false, false); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
	default:
		log.Warn("handler failed, message requeued", sl.Err(err))
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
	}
}
