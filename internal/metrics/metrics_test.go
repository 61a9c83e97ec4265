package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordQuery(t *testing.T) {
	m := New()

	m.RecordQuery("一校区", "by_room", "source")
	m.RecordQuery("一校区", "by_room", "source")
	m.RecordQuery("二校区", "by_slot", "placeholder")

	expected := `
		# HELP hitecs_availability_queries_total Free classroom queries by campus, grouping mode and data origin.
		# TYPE hitecs_availability_queries_total counter
		hitecs_availability_queries_total{campus="一校区",mode="by_room",origin="source"} 2
		hitecs_availability_queries_total{campus="二校区",mode="by_slot",origin="placeholder"} 1
	`
	require.NoError(t, testutil.CollectAndCompare(
		m.queriesTotal, strings.NewReader(expected)))
}

func TestObserveFetch(t *testing.T) {
	m := New()

	m.ObserveFetch(0.05, true)
	m.ObserveFetch(0.2, false)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.fetchTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.fetchTotal.WithLabelValues("error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.fetchDuration))
}

func TestObserveHTTPRequest(t *testing.T) {
	m := New()

	m.ObserveHTTPRequest("GET", "/api/v1/freerooms", 200, 30*time.Millisecond)
	m.ObserveHTTPRequest("GET", "", 404, time.Millisecond)

	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/freerooms", "200")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestRegistryGathers(t *testing.T) {
	m := New()
	m.RecordQuery("一校区", "by_room", "source")

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
