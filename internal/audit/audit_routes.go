package audit

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
	logs := r.Group("/audit-logs")
	logs.Use(auth)
	{
		logs.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceAudit, domain.ActionReadAll), handler.GetAll)
	}

	history := r.Group("/leaves")
	history.Use(auth)
	{
		history.GET("/:id/history", middleware.RBACAuthorize(rbacService, domain.ResourceAudit, domain.ActionReadHistory), handler.GetLeaveHistory)
	}
}
