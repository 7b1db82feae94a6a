package webhook

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the provider callbacks. They authenticate by
// signature, not by bearer token.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guards ...gin.HandlerFunc) {
	hooks := r.Group("/webhooks")
	hooks.Use(guards...)
	{
		hooks.POST("/identity", handler.Identity)
	}
}
