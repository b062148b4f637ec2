package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_api_requests_total",
			Help: "Total number of backend API requests issued by the console.",
		},
		[]string{"method", "route", "status"},
	)
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "console_api_request_duration_seconds",
			Help:    "Backend API request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	storeNotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_store_notifications_total",
			Help: "Total number of store notify rounds.",
		},
		[]string{"store"},
	)
	subscriberPanicsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_store_subscriber_panics_total",
			Help: "Total number of recovered subscriber panics.",
		},
		[]string{"store"},
	)
	refreshTicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_refresh_ticks_total",
			Help: "Periodic chatroom refresh ticks by result.",
		},
		[]string{"result"},
	)
	aiReplyResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_ai_reply_results_total",
			Help: "AI reply suggestion fetches by type and result.",
		},
		[]string{"type", "result"},
	)
	mockRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mock_backend_requests_total",
			Help: "Requests served by the mock backend.",
		},
		[]string{"method", "route", "status"},
	)
)

// refresh tick results
const (
	TickOK      = "ok"
	TickError   = "error"
	TickSkipped = "skipped"
)

func init() {
	prometheus.MustRegister(
		apiRequestsTotal,
		apiRequestDuration,
		storeNotificationsTotal,
		subscriberPanicsTotal,
		refreshTicksTotal,
		aiReplyResultsTotal,
		mockRequestsTotal,
	)
}

// ObserveAPIRequest 記錄一次 API 請求；status 0 代表連線層失敗
func ObserveAPIRequest(method, path string, status int, elapsed time.Duration) {
	route := RouteLabel(path)
	apiRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	apiRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func IncStoreNotification(store string) {
	storeNotificationsTotal.WithLabelValues(store).Inc()
}

func IncSubscriberPanic(store string) {
	subscriberPanicsTotal.WithLabelValues(store).Inc()
}

func IncRefreshTick(result string) {
	refreshTicksTotal.WithLabelValues(result).Inc()
}

func IncAIReply(replyType string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	aiReplyResultsTotal.WithLabelValues(replyType, result).Inc()
}

// RouteLabel 把數字 path segment 收斂成 :id，避免 label 爆量
func RouteLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		if _, err := strconv.ParseInt(seg, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

// FiberMiddleware mock backend 用的請求計數
func FiberMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		mockRequestsTotal.WithLabelValues(c.Method(), RouteLabel(c.Path()), strconv.Itoa(status)).Inc()
		return err
	}
}

// Handler prometheus scrape endpoint for fiber
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// NewServer 只掛 /metrics 的 fiber app (console watch 用)
func NewServer() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/metrics", Handler())
	return app
}
