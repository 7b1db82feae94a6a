package user

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
	users := r.Group("/users")
	users.Use(auth)
	{
		users.GET("/me", middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionRead), handler.GetMe)
		users.PATCH("/me", middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionUpdate), handler.UpdateMe)

		users.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionManage), handler.GetAll)
		users.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionRead), handler.GetByID)
		users.PATCH("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionManage), handler.AdminUpdate)
	}
}
