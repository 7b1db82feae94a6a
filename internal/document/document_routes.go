package document

import (
	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the attachment routes. Upload and list hang off the
// leave request; download is addressed by document id alone.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService) {
	leaves := r.Group("/leaves")
	leaves.Use(auth)
	{
		leaves.POST("/:id/documents", middleware.RBACAuthorize(rbacService, domain.ResourceDocument, domain.ActionCreate), handler.Upload)
		leaves.GET("/:id/documents", middleware.RBACAuthorize(rbacService, domain.ResourceDocument, domain.ActionRead), handler.List)
	}

	documents := r.Group("/documents")
	documents.Use(auth)
	{
		documents.GET("/:id/download", middleware.RBACAuthorize(rbacService, domain.ResourceDocument, domain.ActionRead), handler.Download)
	}
}
