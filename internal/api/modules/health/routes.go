package health

import "github.com/gin-gonic/gin"

// Register routes for the health module
func RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/health", getStatus)  // Liveness with the standard envelope
	g.HEAD("/health", getStatus) // Bodyless probe for load balancers
}
