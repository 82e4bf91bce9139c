// Package metrics defines and registers all custom Prometheus metrics for the
// employee API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "employee_api"

// Auth metrics

// SignupsTotal counts successfully registered users.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of user accounts created.",
	},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "failure", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// Employee metrics

// EmployeesCreatedTotal counts newly created employee records.
// Label:
//   - department: the record's department at creation time
var EmployeesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employees_created_total",
		Help:      "Total number of employee records created, by department.",
	},
	[]string{"department"},
)

// UploadsStoredTotal counts profile pictures written to the file store.
var UploadsStoredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_stored_total",
		Help:      "Total number of profile pictures stored.",
	},
)

// UploadsRemovedTotal counts profile pictures deleted from the file store
// (on replacement or record deletion).
var UploadsRemovedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_removed_total",
		Help:      "Total number of stored profile pictures removed.",
	},
)
