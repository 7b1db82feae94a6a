package middleware

import (
	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const principalKey = "principal"

// SetPrincipal stores the resolved caller on both the gin and the request
// context, and tags the request logger with the user id.
func SetPrincipal(c *gin.Context, p domain.Principal) {
	c.Set(principalKey, p)
	c.Set("user_id", p.UserID.String())
	c.Set("role", string(p.Role))

	ctx := contextutil.WithPrincipal(c.Request.Context(), p)
	if l, ok := contextutil.LoggerFrom(ctx); ok {
		ctx = contextutil.WithLogger(ctx, l.With(zap.String("user_id", p.UserID.String())))
	}
	c.Request = c.Request.WithContext(ctx)
}

func CurrentPrincipal(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}
