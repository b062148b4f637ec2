package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/api/message/loadChatHistory/:id", RouteLabel("/api/message/loadChatHistory/42"))
	assert.Equal(t, "/api/settings/loadSettings", RouteLabel("/api/settings/loadSettings?x=1"))
	assert.Equal(t, "/api/account/v2", RouteLabel("/api/account/v2"))
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(refreshTicksTotal.WithLabelValues(TickSkipped))
	IncRefreshTick(TickSkipped)
	assert.Equal(t, before+1, testutil.ToFloat64(refreshTicksTotal.WithLabelValues(TickSkipped)))

	ObserveAPIRequest("GET", "/api/message/loadChatHistory/7", 200, 10*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.ToFloat64(apiRequestsTotal.WithLabelValues("GET", "/api/message/loadChatHistory/:id", "200")), 1.0)
}

func TestServerExposesMetrics(t *testing.T) {
	IncStoreNotification("test")

	app := NewServer()
	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), "console_store_notifications_total")
}
