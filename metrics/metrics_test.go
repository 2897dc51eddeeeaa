package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(prometheus.NewRegistry())

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/tables/:table_id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/tables/1", "/tables/2", "/nope"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Requests.WithLabelValues("GET", "/tables/:table_id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestPublishCountsEvents(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.Publish("table_seated", nil)
	m.Publish("table_seated", nil)
	m.Publish("table_finished", nil)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Events.WithLabelValues("table_seated")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Events.WithLabelValues("table_finished")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.Publish("reservation_created", nil)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `reservations_floor_events_total{event="reservation_created"} 1`)
}
