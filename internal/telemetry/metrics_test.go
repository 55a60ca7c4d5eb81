package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	// The global provider defaults to no-op; instrument creation still
	// succeeds and recording must not panic.
	m, err := NewMetrics()
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.NotPanics(t, func() {
		m.NativeCall("connect")
		m.EventForwarded("connection_state_changed")
		m.EventDropped("audio_state_changed")
	})
}

func TestNilMetricsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.NativeCall("connect")
		m.EventForwarded("connection_state_changed")
		m.EventDropped("audio_state_changed")
	})
}
