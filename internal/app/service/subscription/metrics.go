package subscription

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	webhooksReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "juegotea_webhooks_total",
		Help: "Provider webhook notifications by type and disposition.",
	}, []string{"type", "disposition"})

	webhooksFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "juegotea_webhook_failures_total",
		Help: "Webhook notifications whose processing failed after receipt.",
	})

	paymentsByStatus = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "juegotea_payments_total",
		Help: "Payments fetched from the provider, by reported status.",
	}, []string{"status"})

	subscriptionEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "juegotea_subscription_events_total",
		Help: "Subscription state transitions.",
	}, []string{"event"})
)
