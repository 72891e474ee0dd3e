// monitor/monitor.go
package monitor

import (
	"expvar"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	ActiveGames      prometheus.Gauge
	WordsGuessed     prometheus.Counter
	WordsSkipped     prometheus.Counter
	GamesCompleted   prometheus.Counter
	MessagesReceived prometheus.Counter
	TurnDuration     prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		ActiveGames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_games",
			Help:      "Number of games currently connected",
		}),
		WordsGuessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "words_guessed_total",
			Help:      "Total number of correctly guessed words",
		}),
		WordsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "words_skipped_total",
			Help:      "Total number of skipped words",
		}),
		GamesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_completed_total",
			Help:      "Total number of games played to the end",
		}),
		MessagesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Total number of client messages received",
		}),
		TurnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_duration_seconds",
			Help:      "Elapsed play time attributed per closed turn",
			Buckets:   prometheus.LinearBuckets(5, 10, 12),
		}),
	}

	prometheus.MustRegister(
		m.ActiveGames,
		m.WordsGuessed,
		m.WordsSkipped,
		m.GamesCompleted,
		m.MessagesReceived,
		m.TurnDuration,
	)

	return m
}

type Monitor struct {
	metrics      *Metrics
	startTime    time.Time
	requestCount int64
	mutex        sync.Mutex
}

func NewMonitor(namespace string) *Monitor {
	return &Monitor{
		metrics:   NewMetrics(namespace),
		startTime: time.Now(),
	}
}

func (m *Monitor) StartServer(addr string) {
	http.Handle("/metrics", promhttp.Handler())

	expvar.Publish("uptime", expvar.Func(func() interface{} {
		return time.Since(m.startTime).Seconds()
	}))

	expvar.Publish("requests", expvar.Func(func() interface{} {
		m.mutex.Lock()
		defer m.mutex.Unlock()
		return m.requestCount
	}))

	go http.ListenAndServe(addr, nil)
}

func (m *Monitor) IncActiveGames() {
	m.metrics.ActiveGames.Inc()
}

func (m *Monitor) DecActiveGames() {
	m.metrics.ActiveGames.Dec()
}

func (m *Monitor) IncWordsGuessed() {
	m.metrics.WordsGuessed.Inc()
}

func (m *Monitor) IncWordsSkipped() {
	m.metrics.WordsSkipped.Inc()
}

func (m *Monitor) IncGamesCompleted() {
	m.metrics.GamesCompleted.Inc()
}

func (m *Monitor) IncMessagesReceived() {
	m.metrics.MessagesReceived.Inc()
	m.mutex.Lock()
	m.requestCount++
	m.mutex.Unlock()
}

func (m *Monitor) ObserveTurnDuration(seconds float64) {
	m.metrics.TurnDuration.Observe(seconds)
}
