// Package metrics instrumenta con Prometheus el ciclo de vida de pedidos y la capa HTTP.
//
// Montaje en cmd/api:
//
//	m := metrics.New(prometheus.NewRegistry())
//	app.Use(m.Middleware())
//	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/jprint-api/internal/domain/entity"
)

const namespace = "jprint"

// Metrics implementa order.Metrics y expone las métricas HTTP.
type Metrics struct {
	reg *prometheus.Registry

	OrdersCreated     prometheus.Counter
	StatusTransitions *prometheus.CounterVec
	OTPCollisions     prometheus.Counter
	OTPExhaustions    prometheus.Counter

	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	RequestInFlight prometheus.Gauge
}

// New registra las métricas en reg (un registro propio evita colisiones entre tests).
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		reg: reg,
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Pedidos creados.",
		}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_transitions_total",
			Help:      "Transiciones de estado aplicadas.",
		}, []string{"from", "to"}),
		OTPCollisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_collisions_total",
			Help:      "Candidatos de OTP rechazados por estar en uso en un pedido activo.",
		}),
		OTPExhaustions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_exhausted_total",
			Help:      "Creaciones de pedido que agotaron los intentos de OTP.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las peticiones HTTP en segundos.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		RequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total de peticiones HTTP.",
		}, []string{"method", "path", "status"}),
		RequestInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Peticiones HTTP en curso.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.OrdersCreated, m.StatusTransitions, m.OTPCollisions, m.OTPExhaustions,
		m.RequestDuration, m.RequestTotal, m.RequestInFlight,
	)
	return m
}

func (m *Metrics) OrderCreated() { m.OrdersCreated.Inc() }

func (m *Metrics) StatusChanged(from, to entity.OrderStatus) {
	m.StatusTransitions.WithLabelValues(string(from), string(to)).Inc()
}

func (m *Metrics) OTPCollision() { m.OTPCollisions.Inc() }

func (m *Metrics) OTPExhausted() { m.OTPExhaustions.Inc() }

// Handler expone el registro en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Middleware registra duración, total y peticiones en curso. path es la ruta declarada
// (/api/orders/:id), no la URL concreta, para acotar la cardinalidad.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		m.RequestInFlight.Inc()
		defer m.RequestInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		m.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		m.RequestTotal.WithLabelValues(labels...).Inc()
		return err
	}
}
