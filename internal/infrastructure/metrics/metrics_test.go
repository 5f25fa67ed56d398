package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCounterWith(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCounterWith(reg)

	c.WithLabelValues("document_created_total").Inc()
	c.WithLabelValues("document_created_total").Inc()
	c.WithLabelValues("user_deleted_total").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.WithLabelValues("document_created_total")))
	assert.Equal(t, 2, testutil.CollectAndCount(c))

	expected := `
# HELP documentmanager_general_counters Domain and transport event counts keyed by result.
# TYPE documentmanager_general_counters counter
documentmanager_general_counters{result="document_created_total"} 2
documentmanager_general_counters{result="user_deleted_total"} 1
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"documentmanager_general_counters"))
}

func TestNewCounterWith_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCounterWith(reg)

	assert.Panics(t, func() { NewCounterWith(reg) })
}

func TestNewRequestDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewRequestDuration(reg)

	h.WithLabelValues("GET", "/api/v1/documents", "2xx").Observe(0.02)

	assert.Equal(t, 1, testutil.CollectAndCount(h))
}
