package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/shaderxfer/pkg/errors"
)

// PrometheusHooks implements TransferHooks and SnapshotHooks with
// Prometheus collectors.
type PrometheusHooks struct {
	transfers    *prometheus.CounterVec
	duration     prometheus.Histogram
	nodes        prometheus.Gauge
	links        prometheus.Gauge
	persistBytes prometheus.Gauge
	persists     *prometheus.CounterVec
	snapshots    *prometheus.CounterVec
}

// NewPrometheusHooks creates the collectors and registers them with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		transfers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shaderxfer_transfers_total",
				Help: "Transfer runs by outcome code",
			},
			[]string{"code"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "shaderxfer_transfer_duration_seconds",
			Help:    "Time from request to rebuilt target graph, failed runs included",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shaderxfer_last_transfer_nodes",
			Help: "Nodes created by the last successful transfer",
		}),
		links: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shaderxfer_last_transfer_links",
			Help: "Links reconnected by the last successful transfer",
		}),
		persistBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shaderxfer_last_persist_bytes",
			Help: "Size of the last container written",
		}),
		persists: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shaderxfer_persists_total",
				Help: "Container writes by outcome code",
			},
			[]string{"code"},
		),
		snapshots: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shaderxfer_snapshots_total",
				Help: "Snapshot operations by kind",
			},
			[]string{"op"},
		),
	}
	reg.MustRegister(h.transfers, h.duration, h.nodes, h.links, h.persistBytes, h.persists, h.snapshots)
	return h
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(errors.GetCodeOr(err, errors.ErrCodeInternal))
}

func (h *PrometheusHooks) OnTransferStart(context.Context, string, string) {}

func (h *PrometheusHooks) OnTransferComplete(_ context.Context, _, _ string, nodes, links int, d time.Duration, err error) {
	h.transfers.WithLabelValues(outcome(err)).Inc()
	h.duration.Observe(d.Seconds())
	if err == nil {
		h.nodes.Set(float64(nodes))
		h.links.Set(float64(links))
	}
}

func (h *PrometheusHooks) OnPersist(_ context.Context, _ string, size int, _ time.Duration, err error) {
	h.persists.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		h.persistBytes.Set(float64(size))
	}
}

func (h *PrometheusHooks) OnSnapshotSaved(context.Context, int) {
	h.snapshots.WithLabelValues("saved").Inc()
}

func (h *PrometheusHooks) OnSnapshotRestored(context.Context, int) {
	h.snapshots.WithLabelValues("restored").Inc()
}

var (
	_ TransferHooks = (*PrometheusHooks)(nil)
	_ SnapshotHooks = (*PrometheusHooks)(nil)
)

// WriteTextfile writes every metric gathered by g to path in the text
// exposition format, for the node-exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
