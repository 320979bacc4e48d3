// Package metrics counts codec traffic with Prometheus collectors.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	siferrors "github.com/jacoelho/sif/errors"
	"github.com/jacoelho/sif/pkg/sifversion"
)

// Outcome label values.
const (
	OutcomeOK = "ok"
)

// Recorder owns the codec collectors and the registry they live in.
type Recorder struct {
	registry *prometheus.Registry
	parsed   *prometheus.CounterVec
	written  *prometheus.CounterVec
	bytes    *prometheus.HistogramVec
}

// NewRecorder returns a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		parsed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sif",
				Name:      "messages_parsed_total",
				Help:      "Documents parsed, by version and outcome.",
			},
			[]string{"version", "outcome"},
		),
		written: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sif",
				Name:      "messages_written_total",
				Help:      "Documents written, by version and outcome.",
			},
			[]string{"version", "outcome"},
		),
		bytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sif",
				Name:      "payload_bytes",
				Help:      "Size of parsed and written documents in bytes.",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
			},
			[]string{"direction"},
		),
	}
	r.registry.MustRegister(r.parsed, r.written, r.bytes)
	return r
}

// Registry returns the registry holding the recorder's collectors.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveParse records one parse of n bytes.
func (r *Recorder) ObserveParse(v sifversion.Version, n int, err error) {
	r.parsed.WithLabelValues(versionLabel(v), outcome(err)).Inc()
	r.bytes.WithLabelValues("in").Observe(float64(n))
}

// ObserveWrite records one write of n bytes.
func (r *Recorder) ObserveWrite(v sifversion.Version, n int, err error) {
	r.written.WithLabelValues(versionLabel(v), outcome(err)).Inc()
	if err == nil {
		r.bytes.WithLabelValues("out").Observe(float64(n))
	}
}

// Gather returns the current metric families.
func (r *Recorder) Gather() ([]*dto.MetricFamily, error) {
	return r.registry.Gather()
}

// WriteText writes the metrics in the Prometheus text exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func versionLabel(v sifversion.Version) string {
	if v.IsZero() {
		return "unknown"
	}
	return v.String()
}

// outcome labels a failure by its error class so label cardinality stays bounded.
func outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if code, ok := siferrors.CodeOf(err); ok {
		return code.Class().String()
	}
	return "io"
}
