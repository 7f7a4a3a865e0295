package bridge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricEventsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slackbridge_events_received_total",
		Help: "Inbound Slack event payloads accepted past the gating checks.",
	})
	metricEventsFiltered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slackbridge_events_filtered_total",
		Help: "Events acknowledged but discarded by the verification/filter gate.",
	})
	metricChallenges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slackbridge_challenges_total",
		Help: "URL verification handshakes answered.",
	})
	metricDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slackbridge_deliveries_total",
		Help: "Delivery attempts by kind (forward, relay) and outcome.",
	}, []string{"kind", "outcome"})
)
