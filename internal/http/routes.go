package http

import (
	"time"

	"todo_backend/internal/http/handlers"
	"todo_backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Tasks      handlers.TaskService
	Store      handlers.Pinger
	Version    string
	RateLimit  int
	RateWindow time.Duration
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	h := handlers.NewHandler(deps.Tasks)
	healthHandler := handlers.NewHealthHandler(deps.Store, deps.Version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	if deps.RateLimit > 0 {
		api.Use(middleware.RateLimit(deps.RateLimit, deps.RateWindow))
	}

	tasks := api.Group("/tasks")
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("/todo", h.CreateTask)
		tasks.PATCH("/complete/:id", h.CompleteTask)
		tasks.PATCH("/notComplete/:id", h.UncompleteTask)
		tasks.DELETE("/delete/:id", h.DeleteTask)
		tasks.PUT("/update/:id", h.UpdateTask)
	}
}
