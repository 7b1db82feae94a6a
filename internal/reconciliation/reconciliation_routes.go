package reconciliation

import (
	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService) {
	finance := r.Group("/finance")
	finance.Use(auth, middleware.RBACAuthorize(rbacService, domain.ResourceFinance, domain.ActionRead))
	{
		finance.GET("/reconciliation", handler.Summary)
		finance.GET("/reconciliation/export", handler.Export)
	}
}
