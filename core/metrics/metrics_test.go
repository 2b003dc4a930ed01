package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestNewSessionRegistersDistinctCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewSession(reg)

	s.FramesIn.Inc()
	s.FramesIn.Inc()
	s.Disconnects.WithLabelValues("read_error").Inc()

	require.Equal(t, 2.0, counterValue(t, s.FramesIn))
	require.Equal(t, 0.0, counterValue(t, s.FramesOut))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)
}
