package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"users-api/internal/core/config"
	"users-api/internal/core/server"
	mdw "users-api/internal/transport/http/middleware"
)

type Deps struct {
	Log     *zap.Logger
	Limits  config.Limits
	Metrics *prometheus.Registry // nil gets a fresh registry
	Modules []any
}

// NewAPIEngine builds the public engine: middleware chain, /metrics, and
// every module's routes under /api.
func NewAPIEngine(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	reg := d.Metrics
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	limiter := mdw.RateLimit(rate.Limit(d.Limits.RPS), d.Limits.Burst)
	if d.Limits.PerIP && d.Limits.RPS > 0 {
		limiter = mdw.RateLimitPerIP(rate.Limit(d.Limits.RPS), d.Limits.Burst)
	}

	r := server.NewRouter(d.Log)
	r.Use(
		mdw.RequestID(),
		limiter,
		mdw.ConcurrencyLimit(d.Limits.MaxInFlight),
		mdw.MaxBodyBytes(d.Limits.MaxBodyBytes),
		mdw.Timeout(time.Duration(d.Limits.RequestTimeout)*time.Second),
		mdw.NewHTTPMetrics(reg).Handler(),
		mdw.AccessLog(d.Log),
	)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	var modules Registry
	modules.Register(d.Modules...)
	modules.MountAll(r, r.Group("/api"))
	return r
}
