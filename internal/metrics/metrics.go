package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SyncMetrics counts reconciliation activity. It implements
// services.SyncObserver so the sync engine stays unaware of Prometheus.
type SyncMetrics struct {
	created  prometheus.Counter
	updated  prometheus.Counter
	orphaned prometheus.Counter
	failures prometheus.Counter
}

func NewSyncMetrics(registerer prometheus.Registerer) *SyncMetrics {
	factory := promauto.With(registerer)
	return &SyncMetrics{
		created: factory.NewCounter(prometheus.CounterOpts{
			Name: "diet_sync_records_created_total",
			Help: "Diet records created from schedule templates during reconciliation.",
		}),
		updated: factory.NewCounter(prometheus.CounterOpts{
			Name: "diet_sync_records_updated_total",
			Help: "Pending diet records whose core fields were refreshed from an edited template.",
		}),
		orphaned: factory.NewCounter(prometheus.CounterOpts{
			Name: "diet_sync_records_orphaned_total",
			Help: "Pending diet records removed because their source template was deleted.",
		}),
		failures: factory.NewCounter(prometheus.CounterOpts{
			Name: "diet_sync_failures_total",
			Help: "Reconciliation passes that rolled back with an error.",
		}),
	}
}

func (metrics *SyncMetrics) RecordCreated(date, templateID string) { metrics.created.Inc() }
func (metrics *SyncMetrics) RecordUpdated(date, recordID string)   { metrics.updated.Inc() }
func (metrics *SyncMetrics) OrphanRemoved(date, recordID string)   { metrics.orphaned.Inc() }
func (metrics *SyncMetrics) SyncFailed(date string, err error)     { metrics.failures.Inc() }
