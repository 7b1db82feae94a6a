package leave

import (
	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /leaves. createGuards run before Create only, e.g.
// idempotency and per-user rate limiting.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
	createGuards ...gin.HandlerFunc,
) {
	leaves := r.Group("/leaves")
	leaves.Use(auth)
	{
		create := append([]gin.HandlerFunc{
			middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionCreate),
		}, createGuards...)
		create = append(create, handler.Create)

		leaves.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead), handler.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead), handler.GetByID)
		leaves.POST("", create...)
		leaves.PATCH("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionUpdate), handler.Update)
		leaves.POST("/:id/process", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionProcess), handler.Process)
		leaves.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionUpdate), handler.Cancel)
		leaves.POST("/:id/sync", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionSyncRetry), handler.RetrySync)
	}
}
