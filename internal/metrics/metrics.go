package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)

	HTTPRequestsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsRejected,
			Help: HelpTextHTTPRequestsRejected,
		},
		[]string{LabelReason},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Game Metrics
var (
	TasksGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTasksGenerated,
			Help: HelpTextTasksGenerated,
		},
		[]string{LabelTitle},
	)

	TasksStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTasksStarted,
			Help: HelpTextTasksStarted,
		},
		[]string{LabelTitle},
	)

	TasksRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTasksRejected,
			Help: HelpTextTasksRejected,
		},
	)

	TasksCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTasksCompleted,
			Help: HelpTextTasksCompleted,
		},
		[]string{LabelTitle},
	)

	WorkEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWorkEarned,
			Help: HelpTextWorkEarned,
		},
	)

	TaskReward = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameTaskReward,
			Help:    HelpTextTaskReward,
			Buckets: RewardBuckets,
		},
	)

	QueueFull = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameQueueFull,
			Help: HelpTextQueueFull,
		},
	)

	TimerResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTimerResets,
			Help: HelpTextTimerResets,
		},
	)

	GamesStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGamesStarted,
			Help: HelpTextGamesStarted,
		},
	)

	SessionsClosed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionsClosed,
			Help: HelpTextSessionsClosed,
		},
		[]string{LabelReason},
	)

	WalletChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWalletChanges,
			Help: HelpTextWalletChanges,
		},
		[]string{LabelState},
	)
)

// Gauges refreshed by the session stats job
var (
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveSessions,
			Help: HelpTextActiveSessions,
		},
	)

	SessionsInGame = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSessionsInGame,
			Help: HelpTextSessionsInGame,
		},
	)

	SSEClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSSEClients,
			Help: HelpTextSSEClients,
		},
	)

	SSEEventsDropped = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSSEEventsDropped,
			Help: HelpTextSSEEventsDropped,
		},
	)
)
