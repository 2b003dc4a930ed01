// Package metrics exposes the Prometheus collectors the teacher's go.mod
// pulls in via github.com/prometheus/client_golang but that the retrieved
// pack did not carry a usage site for; these follow the library's
// standard promauto/MustRegister idiom rather than any one example file.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Session aggregates the counters a Framer/Session pair reports across
// its lifetime. One Session is constructed per process and shared by
// every connection; labels are not per-connection to keep cardinality
// bounded under churn.
type Session struct {
	FramesIn      prometheus.Counter
	FramesOut     prometheus.Counter
	BytesIn       prometheus.Counter
	BytesOut      prometheus.Counter
	Disconnects   *prometheus.CounterVec
	CodecErrors   *prometheus.CounterVec
	ActiveConns   prometheus.Gauge
}

// NewSession registers a fresh set of collectors against reg. Passing
// prometheus.NewRegistry() keeps tests hermetic; passing
// prometheus.DefaultRegisterer wires the process-wide /metrics handler.
func NewSession(reg prometheus.Registerer) *Session {
	f := promauto.With(reg)
	return &Session{
		FramesIn: f.NewCounter(prometheus.CounterOpts{
			Name: "protanki_frames_in_total",
			Help: "Frames successfully decoded from inbound connections.",
		}),
		FramesOut: f.NewCounter(prometheus.CounterOpts{
			Name: "protanki_frames_out_total",
			Help: "Frames written to outbound connections.",
		}),
		BytesIn: f.NewCounter(prometheus.CounterOpts{
			Name: "protanki_bytes_in_total",
			Help: "Raw bytes read from sockets.",
		}),
		BytesOut: f.NewCounter(prometheus.CounterOpts{
			Name: "protanki_bytes_out_total",
			Help: "Raw bytes written to sockets.",
		}),
		Disconnects: f.NewCounterVec(prometheus.CounterOpts{
			Name: "protanki_disconnects_total",
			Help: "Connection terminations, labeled by close reason.",
		}, []string{"reason"}),
		CodecErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "protanki_codec_errors_total",
			Help: "Fatal mid-frame codec decode/encode errors, labeled by kind.",
		}, []string{"kind"}),
		ActiveConns: f.NewGauge(prometheus.GaugeOpts{
			Name: "protanki_active_connections",
			Help: "Currently open connections across all sessions.",
		}),
	}
}
