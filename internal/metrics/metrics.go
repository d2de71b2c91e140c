package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MessagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guest_messages_sent_total",
			Help: "Total proactive guest messages delivered, by final method",
		},
		[]string{"method"},
	)

	MessageFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "guest_message_failures_total",
			Help: "Total proactive guest messages that failed on both channels",
		},
	)

	BroadcastsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcast_recipients_sent_total",
			Help: "Total broadcast recipients delivered",
		},
	)

	BroadcastFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcast_recipients_failed_total",
			Help: "Total broadcast recipients that failed",
		},
	)
)

func Init() {
	prometheus.MustRegister(MessagesSent)
	prometheus.MustRegister(MessageFailures)
	prometheus.MustRegister(BroadcastsSent)
	prometheus.MustRegister(BroadcastFailures)
}
