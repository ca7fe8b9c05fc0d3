// Package metrics регистрирует счётчики Prometheus, которые отдаются на /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "membership"

var (
	// ContractTransitions считает попытки переходов состояния договора по действию и результату.
	ContractTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contract_transitions_total",
		Help:      "Contract state transitions by action and result.",
	}, []string{"action", "result"})

	// ProjectedEntries считает прогнозные строки начислений, отданные клиентам.
	ProjectedEntries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projected_billing_entries_total",
		Help:      "Projected billing entries computed on demand.",
	})

	// RemindersPublished считает напоминания о платежах, опубликованные в брокер.
	RemindersPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "due_reminders_published_total",
		Help:      "Due reminders published to the broker by result.",
	}, []string{"result"})

	// EmailsSent считает отправленные письма по результату.
	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Reminder e-mails by delivery result.",
	}, []string{"result"})

	// CacheLookups считает обращения к кешу по ключевому пространству и исходу.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Cache lookups by keyspace and outcome.",
	}, []string{"keyspace", "outcome"})
)

// Result переводит ошибку в значение метки result.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
