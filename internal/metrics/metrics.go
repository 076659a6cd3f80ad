// Package metrics содержит счётчики Prometheus для решений о доступе
// и наблюдаемых состояний подписки.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты решения о доступе для метки outcome.
const (
	OutcomeAllowed            = "allowed"
	OutcomeDeniedRole         = "denied_role"
	OutcomeDeniedFeature      = "denied_feature"
	OutcomeDeniedSubscription = "denied_subscription"
)

// AccessDecisions считает решения вычислителя доступа по результату.
var AccessDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "access_decisions_total",
	Help: "Access evaluator decisions by outcome.",
}, []string{"outcome"})

// SubscriptionStates считает вычисленные состояния подписки.
var SubscriptionStates = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "subscription_states_total",
	Help: "Resolved subscription lifecycle states.",
}, []string{"state"})
