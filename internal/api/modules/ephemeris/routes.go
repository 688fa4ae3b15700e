package ephemeris_module

import "github.com/gin-gonic/gin"

// Register routes for the ephemeris module
func RegisterRoutes(g *gin.RouterGroup, svc *Service) {
	group := g.Group("/ephemeris")

	// Public routes
	group.GET("", svc.ListEphemerides)             // Every loaded record
	group.GET("/today", svc.GetToday)              // Resolved fact for today
	group.POST("/refresh", svc.RefreshEphemerides) // Reload records from the store
	group.POST("/generate", svc.RelayGeneration)   // Forward to the generator entrypoint

	// Protected routes (require the generator key)
	if svc.generator != nil {
		group.POST("/generator", svc.BearerAuthHandler(), svc.GenerateEphemeris)
	}
}
