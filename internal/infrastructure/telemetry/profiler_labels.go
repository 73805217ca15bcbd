package telemetry

import (
	"context"
	"sort"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys
const (
	ProfilingLabelRoute     = "route"
	ProfilingLabelMethod    = "method"
	ProfilingLabelOperation = "operation"
	ProfilingLabelProvider  = "provider"
)

// MaxLabelValueLength caps label values
const MaxLabelValueLength = 128

// highCardinalityLabels are dropped; every distinct value becomes its own
// profile series
var highCardinalityLabels = map[string]bool{
	"user_id":    true,
	"request_id": true,
	"order_id":   true,
	"store_id":   true,
	"trace_id":   true,
	"span_id":    true,
}

// WithProfilingLabels runs fn with Pyroscope labels attached to its
// goroutine. Empty or high cardinality labels are skipped.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// sanitizeLabels returns key/value pairs sorted by key
func sanitizeLabels(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k, v := range labels {
		if k == "" || v == "" || highCardinalityLabels[k] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		v := labels[k]
		if len(v) > MaxLabelValueLength {
			v = v[:MaxLabelValueLength]
		}
		pairs = append(pairs, k, v)
	}
	return pairs
}
