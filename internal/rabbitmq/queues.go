package rabbitmq

import "github.com/streadway/amqp"

const (
	// RoutingDueReminder задаёт ключ маршрутизации напоминаний о предстоящем списании.
	RoutingDueReminder   = "billing.upcoming"
	// RoutingContractEvent задаёт ключ маршрутизации событий изменения договора.
	RoutingContractEvent = "contract.event"

	QueueDueReminders   = "notifications.billing.upcoming"
	QueueContractEvents = "notifications.contract.events"
)

// События договора пока никто не читает, поэтому очередь ограничена по времени жизни и длине.
const (
	contractEventsTTL    = int32(24 * 60 * 60 * 1000)
	contractEventsMaxLen = int32(10000)
)

type QueueConfig struct {
	QueueName  string
	RoutingKey string
	Args       amqp.Table
}

// NotificationQueues возвращает очереди, которые объявляет каждый сервис при старте.
func NotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueDueReminders, RoutingKey: RoutingDueReminder},
		{
			QueueName:  QueueContractEvents,
			RoutingKey: RoutingContractEvent,
			Args: amqp.Table{
				"x-message-ttl": contractEventsTTL,
				"x-max-length":  contractEventsMaxLen,
			},
		},
	}
}
