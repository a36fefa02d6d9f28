package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordOutcome(t *testing.T) {
	c := NewCollector()
	c.RecordOutcome("direct")
	c.RecordOutcome("direct")
	c.RecordOutcome("closed")

	require.Equal(t, 2.0, testutil.ToFloat64(c.ResponsesTotal.WithLabelValues("direct")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.ResponsesTotal.WithLabelValues("closed")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.ConversationsClosed))
}

func TestSetCatalogSize(t *testing.T) {
	c := NewCollector()
	c.SetCatalogSize(12)
	require.Equal(t, 12.0, testutil.ToFloat64(c.CatalogEntries))
}

func TestRecordHTTPStatus(t *testing.T) {
	c := NewCollector()
	c.RecordHTTPStatus(http.StatusOK)
	c.RecordHTTPStatus(http.StatusBadRequest)
	c.RecordHTTPStatus(http.StatusInternalServerError)
	c.RecordHTTPStatus(http.StatusBadGateway)

	require.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequestsTotal.WithLabelValues("2xx")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequestsTotal.WithLabelValues("4xx")))
	require.Equal(t, 2.0, testutil.ToFloat64(c.HTTPRequestsTotal.WithLabelValues("5xx")))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	c.RecordOutcome("direct")
	c.SetCatalogSize(3)
	c.RecordHTTPStatus(http.StatusOK)
}

func TestRegistryGathers(t *testing.T) {
	c := NewCollector()
	c.RecordOutcome("fallback")
	families, err := c.Registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.Contains(t, names, "faqbot_chat_responses_total")
	require.Contains(t, names, "faqbot_catalog_entries")
}
