package category

import (
	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
) {
	categories := r.Group("/leave-categories")
	categories.Use(auth)
	{
		categories.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceCategory, domain.ActionRead), handler.GetAll)
		categories.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceCategory, domain.ActionRead), handler.GetByID)
		categories.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceCategory, domain.ActionManage), handler.Create)
		categories.PATCH("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceCategory, domain.ActionManage), handler.Update)
	}
}
