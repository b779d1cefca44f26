package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ShoppingListExports counts generated shopping list downloads.
	ShoppingListExports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ladle_shopping_list_exports_total",
		Help: "Total number of shopping list exports",
	})

	// RecipeMutations counts recipe create/update/delete operations.
	RecipeMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ladle_recipe_mutations_total",
		Help: "Total number of recipe mutations by action",
	}, []string{"action"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ladle_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
