// Package metrics defines and registers all custom Prometheus metrics for the
// smart waste backend. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "smartwaste"

// ── Listing metrics ───────────────────────────────────────────────────────────

// ListingsCreatedTotal counts newly created listings.
// Label:
//   - item_type: "WASTE" or "OLD_ITEM"
var ListingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of waste listings created, by item type.",
	},
	[]string{"item_type"},
)

// StatusTransitionsTotal counts listing status transitions, both explicit and
// the automatic ones triggered by collector assignment changes.
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_status_transitions_total",
		Help:      "Total number of listing status transitions.",
	},
	[]string{"from", "to"},
)

// ListingsDeletedTotal counts deleted listings.
var ListingsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_deleted_total",
		Help:      "Total number of waste listings deleted.",
	},
)

// ── Comment metrics ───────────────────────────────────────────────────────────

// CommentsAppendedTotal counts comments successfully appended to listings.
var CommentsAppendedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_appended_total",
		Help:      "Total number of comments appended to listings.",
	},
)

// CommentsSkippedTotal counts comment entries dropped by the best-effort
// batch append.
// Label:
//   - reason: "missing_fields", "invalid_author", "author_not_found", "insert_failed"
var CommentsSkippedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_skipped_total",
		Help:      "Total number of comment entries skipped during batch append.",
	},
	[]string{"reason"},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// ViewCacheTotal counts listing view cache lookups.
// Label:
//   - result: "hit" or "miss"
var ViewCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_view_cache_total",
		Help:      "Total number of listing view cache lookups, by result.",
	},
	[]string{"result"},
)
