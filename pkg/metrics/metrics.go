package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
// Все методы безопасны для вызова на nil (метрики отключены)
type Metrics struct {
	service string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration   *prometheus.HistogramVec
	dbOpenConnections *prometheus.GaugeVec
	dbInUse           *prometheus.GaugeVec
	dbIdle            *prometheus.GaugeVec

	bookingsTotal      *prometheus.CounterVec
	bulkRecordsTotal   *prometheus.CounterVec
	completedTotal     *prometheus.CounterVec
	eventsDroppedTotal *prometheus.CounterVec
	eventSubscribers   *prometheus.GaugeVec
	idempotentReplays  *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном регистре Prometheus
func New(service string) *Metrics {
	return NewWithRegisterer(service, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном регистре
func NewWithRegisterer(service string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		service: service,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation", "status"}),
		dbOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established database connections",
		}, []string{"service"}),
		dbInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of database connections currently in use",
		}, []string{"service"}),
		dbIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle database connections",
		}, []string{"service"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lab_bookings_total",
			Help: "Booking create attempts by result",
		}, []string{"service", "result"}),
		bulkRecordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lab_bulk_records_total",
			Help: "Records processed by bulk operations",
		}, []string{"service", "operation", "outcome"}),
		completedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lab_bookings_completed_total",
			Help: "Confirmed bookings moved to completed after their slot ended",
		}, []string{"service"}),
		eventsDroppedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lab_events_dropped_total",
			Help: "Change notifications dropped because a subscriber was slow",
		}, []string{"service"}),
		eventSubscribers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lab_event_subscribers",
			Help: "Number of active change subscribers",
		}, []string{"service"}),
		idempotentReplays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lab_idempotent_replays_total",
			Help: "Create requests answered from an earlier request with the same key",
		}, []string{"service"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConnections,
		m.dbInUse,
		m.dbIdle,
		m.bookingsTotal,
		m.bulkRecordsTotal,
		m.completedTotal,
		m.eventsDroppedTotal,
		m.eventSubscribers,
		m.idempotentReplays,
	)

	return m
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.service, method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.service, method, route).Observe(duration.Seconds())
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(m.service, operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет состояние пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbOpenConnections.WithLabelValues(m.service).Set(float64(open))
	m.dbInUse.WithLabelValues(m.service).Set(float64(inUse))
	m.dbIdle.WithLabelValues(m.service).Set(float64(idle))
}

// IncBooking учитывает результат попытки создания бронирования
func (m *Metrics) IncBooking(result string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(m.service, result).Inc()
}

// AddBulkRecords учитывает записи, обработанные массовой операцией
func (m *Metrics) AddBulkRecords(operation, outcome string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.bulkRecordsTotal.WithLabelValues(m.service, operation, outcome).Add(float64(count))
}

// AddCompleted учитывает бронирования, завершенные планировщиком
func (m *Metrics) AddCompleted(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.completedTotal.WithLabelValues(m.service).Add(float64(count))
}

// IncEventsDropped учитывает потерянное уведомление
func (m *Metrics) IncEventsDropped() {
	if m == nil {
		return
	}
	m.eventsDroppedTotal.WithLabelValues(m.service).Inc()
}

// SetEventSubscribers обновляет число подписчиков
func (m *Metrics) SetEventSubscribers(count int) {
	if m == nil {
		return
	}
	m.eventSubscribers.WithLabelValues(m.service).Set(float64(count))
}

// IncIdempotentReplay учитывает повтор запроса по ключу идемпотентности
func (m *Metrics) IncIdempotentReplay() {
	if m == nil {
		return
	}
	m.idempotentReplays.WithLabelValues(m.service).Inc()
}
