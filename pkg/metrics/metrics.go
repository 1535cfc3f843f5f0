package metrics

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Labels are the dimensions of one counter series, e.g. {"reason": "decode"}.
type Labels map[string]string

func (l Labels) set() attribute.Set {
	kvs := make([]attribute.KeyValue, 0, len(l))
	for k, v := range l {
		kvs = append(kvs, attribute.String(k, v))
	}
	return attribute.NewSet(kvs...)
}

// series is one name+labels counter and the OTel instrument it mirrors to.
type series struct {
	value   atomic.Int64
	counter metric.Int64Counter
	attrs   metric.AddOption
}

// Registry keeps process-local counters and mirrors them to OTel counters.
// A nil Registry is a no-op so components can run without metrics.
type Registry struct {
	mu          sync.RWMutex
	series      map[string]*series
	instruments map[string]metric.Int64Counter
	meter       metric.Meter
}

func NewRegistry() *Registry {
	return &Registry{
		series:      make(map[string]*series),
		instruments: make(map[string]metric.Int64Counter),
		meter:       otel.GetMeterProvider().Meter("photo_album"),
	}
}

// seriesKey renders name{k=v,...} with keys in attribute.Set order.
func seriesKey(name string, set attribute.Set) string {
	if set.Len() == 0 {
		return name
	}
	return name + "{" + set.Encoded(attribute.DefaultEncoder()) + "}"
}

// Inc adds n to the counter name with labels.
func (r *Registry) Inc(ctx context.Context, name string, labels Labels, n int64) {
	if r == nil {
		return
	}
	s := r.lookup(name, labels)
	s.value.Add(n)
	s.counter.Add(ctx, n, s.attrs)
}

func (r *Registry) lookup(name string, labels Labels) *series {
	set := labels.set()
	key := seriesKey(name, set)

	r.mu.RLock()
	s := r.series[key]
	r.mu.RUnlock()
	if s != nil {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s = r.series[key]; s != nil {
		return s
	}
	ctr, ok := r.instruments[name]
	if !ok {
		var err error
		if ctr, err = r.meter.Int64Counter(name); err != nil {
			ctr = noop.Int64Counter{}
		}
		r.instruments[name] = ctr
	}
	s = &series{counter: ctr, attrs: metric.WithAttributeSet(set)}
	r.series[key] = s
	return s
}

// Value returns the current value of a counter, 0 if it was never touched.
func (r *Registry) Value(name string, labels Labels) int64 {
	if r == nil {
		return 0
	}
	key := seriesKey(name, labels.set())
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s := r.series[key]; s != nil {
		return s.value.Load()
	}
	return 0
}

// SnapshotLines returns "name{labels} value" lines sorted by series.
func (r *Registry) SnapshotLines() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	lines := make([]string, 0, len(r.series))
	for _, key := range slices.Sorted(maps.Keys(r.series)) {
		lines = append(lines, fmt.Sprintf("%s %d", key, r.series[key].value.Load()))
	}
	return lines
}

// WriteText writes counters one per line.
func (r *Registry) WriteText(w io.Writer) error {
	for _, line := range r.SnapshotLines() {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}
