package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDefault_ReturnsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestMetrics_RecordAuthAttempt(t *testing.T) {
	m := Default()
	before := testutil.ToFloat64(m.AuthAttemptsTotal.WithLabelValues("default", "success"))

	m.RecordAuthAttempt("default", "success", 5*time.Millisecond)

	after := testutil.ToFloat64(m.AuthAttemptsTotal.WithLabelValues("default", "success"))
	assert.Equal(t, before+1, after)
}

func TestMetrics_RecordMasquerade(t *testing.T) {
	m := Default()
	before := testutil.ToFloat64(m.MasqueradeTotal.WithLabelValues("denied"))

	m.RecordMasquerade("denied")

	after := testutil.ToFloat64(m.MasqueradeTotal.WithLabelValues("denied"))
	assert.Equal(t, before+1, after)
}
