package http

import (
	"github.com/gin-gonic/gin"

	"todo_backend/internal/http/middleware"
)

// NewEngine builds the gin engine with the standard middleware chain and all routes.
func NewEngine(deps Deps, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.Metrics(),
		middleware.CORS(allowedOrigins),
	)

	RegisterRoutes(r, deps)
	return r
}
