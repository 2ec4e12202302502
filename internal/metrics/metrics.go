// Package metrics defines the Prometheus collectors for a catalog session. It is
// the single source of truth for metric names, labels, and help strings.
//
// There is no scrape endpoint: the process writes the default registry to a
// node_exporter textfile on exit (see WriteTextfile).
package metrics

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "historiography"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "invalid", "username_taken", "email_taken" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "invalid" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AdminKeyChecksTotal counts admin second-factor checks ("accepted"/"rejected").
var AdminKeyChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_key_checks_total",
		Help:      "Total number of admin key checks, by result.",
	},
	[]string{"result"},
)

// AccountDeletionsTotal counts account deletion requests.
// Label:
//   - result: "deleted", "refused" or "error"
var AccountDeletionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_deletions_total",
		Help:      "Total number of account deletion requests, by result.",
	},
	[]string{"result"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// PlaceOperationsTotal counts successful place mutations.
// Label:
//   - op: "add", "update" or "delete"
var PlaceOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "place_operations_total",
		Help:      "Total number of successful place mutations, by operation.",
	},
	[]string{"op"},
)

// ReviewOperationsTotal counts review mutations.
// Labels:
//   - op: "add" or "delete"
//   - result: "ok", "invalid" or "error"
var ReviewOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "review_operations_total",
		Help:      "Total number of review mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreSaveDuration measures how long a full-document save takes.
// Label:
//   - store: "users", "places" or "reviews"
var StoreSaveDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_save_duration_seconds",
		Help:      "Duration of writing one JSON document to disk.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
	},
	[]string{"store"},
)

// StoreErrorsTotal counts failed loads and saves.
// Labels:
//   - store: "users", "places" or "reviews"
//   - op: "load" or "save"
var StoreErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_errors_total",
		Help:      "Total number of store load/save failures.",
	},
	[]string{"store", "op"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// ScreensShownTotal counts screen renders by screen name.
var ScreensShownTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "screens_shown_total",
		Help:      "Total number of screen render cycles, by screen.",
	},
	[]string{"screen"},
)

// AccessDeniedTotal counts refused transitions into role-gated screens.
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of refused screen transitions, by target screen.",
	},
	[]string{"screen"},
)

// WriteTextfile writes the default registry to path in the text exposition
// format. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
