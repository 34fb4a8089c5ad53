// Package metrics defines and registers all custom Prometheus metrics for the
// tutorial platform. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tutorialhub"

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TutorialsCreatedTotal counts newly authored tutorials.
var TutorialsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tutorials_created_total",
		Help:      "Total number of tutorials created.",
	},
)

// TutorialsDeletedTotal counts tutorials removed by their authors.
var TutorialsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tutorials_deleted_total",
		Help:      "Total number of tutorials deleted.",
	},
)

// ViewsServedTotal counts successful public single-tutorial fetches. Each one
// also increments the tutorial's own persistent view counter.
var ViewsServedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "views_served_total",
		Help:      "Total number of public tutorial views served.",
	},
)
