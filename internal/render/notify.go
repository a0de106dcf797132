package render

import (
	"encoding/json"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"flyerapi/internal/model"
)

// MetricsNotifier counts export outcomes per region in Prometheus.
type MetricsNotifier struct {
	exports *prometheus.CounterVec
}

var _ Notifier = (*MetricsNotifier)(nil)

// NewMetricsNotifier registers the export counter on the given registry.
func NewMetricsNotifier(reg prometheus.Registerer) (*MetricsNotifier, error) {
	n := &MetricsNotifier{
		exports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flyer_exports_total",
				Help: "Total number of flyer export attempts by outcome.",
			},
			[]string{"region", "status"},
		),
	}
	if err := reg.Register(n.exports); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *MetricsNotifier) ExportStarted(region model.Region) {
	n.exports.WithLabelValues(string(region), "started").Inc()
}

func (n *MetricsNotifier) ExportSucceeded(region model.Region, _ int) {
	n.exports.WithLabelValues(string(region), "success").Inc()
}

func (n *MetricsNotifier) ExportFailed(region model.Region, _ error) {
	n.exports.WithLabelValues(string(region), "failure").Inc()
}

// LogNotifier writes one JSON object per lifecycle event, matching the
// request logger's line format.
type LogNotifier struct {
	enc *json.Encoder
}

var _ Notifier = (*LogNotifier)(nil)

// NewLogNotifier writes JSON lines to w (typically os.Stdout).
func NewLogNotifier(w io.Writer) *LogNotifier {
	return &LogNotifier{enc: json.NewEncoder(w)}
}

func (n *LogNotifier) log(event string, region model.Region, extra map[string]any) {
	entry := map[string]any{
		"ts":     time.Now().UTC().Format(time.RFC3339Nano),
		"event":  event,
		"region": string(region),
	}
	for k, v := range extra {
		entry[k] = v
	}
	_ = n.enc.Encode(entry)
}

func (n *LogNotifier) ExportStarted(region model.Region) {
	n.log("flyer_export_started", region, nil)
}

func (n *LogNotifier) ExportSucceeded(region model.Region, size int) {
	n.log("flyer_export_succeeded", region, map[string]any{"pdf_bytes": size})
}

func (n *LogNotifier) ExportFailed(region model.Region, err error) {
	n.log("flyer_export_failed", region, map[string]any{"error": err.Error()})
}

// MultiNotifier fans lifecycle events out to several notifiers.
type MultiNotifier []Notifier

var _ Notifier = (MultiNotifier)(nil)

func (m MultiNotifier) ExportStarted(region model.Region) {
	for _, n := range m {
		n.ExportStarted(region)
	}
}

func (m MultiNotifier) ExportSucceeded(region model.Region, size int) {
	for _, n := range m {
		n.ExportSucceeded(region, size)
	}
}

func (m MultiNotifier) ExportFailed(region model.Region, err error) {
	for _, n := range m {
		n.ExportFailed(region, err)
	}
}
