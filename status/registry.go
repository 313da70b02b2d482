package status

import (
	"log/slog"
	"sync/atomic"
)

// Registry is the central metrics facade
// Components cache pointers at construction; loops write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// LogValue renders every metric as one flat group, keys sorted within each type
func (r *Registry) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, r.TotalCount())
	r.Bools.Range(func(key string, v *atomic.Bool) {
		attrs = append(attrs, slog.Bool(key, v.Load()))
	})
	r.Ints.Range(func(key string, v *atomic.Int64) {
		attrs = append(attrs, slog.Int64(key, v.Load()))
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		attrs = append(attrs, slog.Float64(key, v.Get()))
	})
	r.Strings.Range(func(key string, v *AtomicString) {
		attrs = append(attrs, slog.String(key, v.Load()))
	})
	return slog.GroupValue(attrs...)
}
