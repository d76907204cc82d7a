// Package metrics содержит счётчики Prometheus для маркетплейс-бота.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы выполнения команды.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Registry хранит зарегистрированные метрики бота.
type Registry struct {
	reg          *prometheus.Registry
	Commands     *prometheus.CounterVec
	PostFailures *prometheus.CounterVec
	Records      *prometheus.GaugeVec
}

// NewRegistry создаёт отдельный реестр метрик.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	commands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "marketbot_commands_total",
		Help: "Handled slash commands by name and outcome.",
	}, []string{"command", "outcome"})
	postFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "marketbot_post_failures_total",
		Help: "Outbound channel posts rejected by the platform.",
	}, []string{"command"})
	records := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "marketbot_records",
		Help: "Records currently held per collection.",
	}, []string{"collection"})

	r.MustRegister(commands, postFailures, records)
	return &Registry{
		reg:          r,
		Commands:     commands,
		PostFailures: postFailures,
		Records:      records,
	}
}

// ObserveCommand учитывает выполнение команды.
func (r *Registry) ObserveCommand(command, outcome string) {
	if r == nil {
		return
	}
	r.Commands.WithLabelValues(command, outcome).Inc()
}

// ObservePostFailure учитывает неудачную публикацию сообщения.
func (r *Registry) ObservePostFailure(command string) {
	if r == nil {
		return
	}
	r.PostFailures.WithLabelValues(command).Inc()
}

// SetRecords обновляет число записей в коллекции.
func (r *Registry) SetRecords(collection string, n int) {
	if r == nil {
		return
	}
	r.Records.WithLabelValues(collection).Set(float64(n))
}

// Handler отдаёт метрики в формате Prometheus. Сжатие ответа выполняет GzipMiddleware.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{DisableCompression: true})
}
