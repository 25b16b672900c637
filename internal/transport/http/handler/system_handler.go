package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything readiness can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// SystemHandler serves the info, health and readiness endpoints.
type SystemHandler struct {
	appName string
	env     string
	checks  map[string]Pinger
	now     func() time.Time
}

func NewSystemHandler(appName, env string, checks map[string]Pinger) *SystemHandler {
	return &SystemHandler{appName: appName, env: env, checks: checks, now: time.Now}
}

type HealthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (h *SystemHandler) Priority() int { return 0 }

func (h *SystemHandler) MountRoot(r *gin.Engine) {
	r.GET("/", h.Info)
}

func (h *SystemHandler) MountAPI(api *gin.RouterGroup) {
	api.GET("/health", h.Health)
	api.GET("/ready", h.Ready)
}

// Info lists the public endpoints.
func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to " + h.appName + "!",
		"endpoints": gin.H{
			"health": "/api/health",
			"ready":  "/api/ready",
			"users":  "/api/users (GET, POST)",
		},
	})
}

// Health answers liveness checks; no dependency is consulted.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "OK",
		Message:     "Backend server is running!",
		Timestamp:   h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Environment: h.env,
	})
}

// Ready pings every dependency and answers 503 if any of them fails.
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	res := ReadyResponse{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	code := http.StatusOK
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			res.Checks[name] = "error: " + err.Error()
			res.Status = "unhealthy"
			code = http.StatusServiceUnavailable
			continue
		}
		res.Checks[name] = "ok"
	}
	c.JSON(code, res)
}
