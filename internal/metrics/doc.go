// Package metrics defines the Prometheus metrics exported by the
// thumbnail pipeline and its entrypoints. Metrics are registered at
// package init via promauto and served by the devserver's /metrics
// endpoint; in Lambda they still accumulate and cost nothing.
package metrics
