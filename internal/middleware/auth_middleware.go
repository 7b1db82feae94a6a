package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/shared/apperror"
	"github.com/cha0jun/leavey/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMissing = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken = apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
)

// PrincipalResolver maps a verified identity onto a local user, provisioning
// one on first sight.
type PrincipalResolver interface {
	Resolve(ctx context.Context, id domain.Identity) (domain.Principal, error)
}

// AuthMiddleware verifies an HS256 bearer token (or the access_token cookie)
// issued by the identity provider and stores the resolved principal.
func AuthMiddleware(secret string, resolver PrincipalResolver) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			response.Abort(c, ErrTokenMissing)
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Abort(c, ErrTokenExpired)
				return
			}
			response.Abort(c, ErrInvalidToken)
			return
		}

		sub, _ := claims.GetSubject()
		if sub == "" {
			response.Abort(c, ErrInvalidToken)
			return
		}
		email, _ := claims["email"].(string)
		name, _ := claims["name"].(string)

		p, err := resolver.Resolve(c.Request.Context(), domain.Identity{
			Subject: sub,
			Email:   email,
			Name:    name,
		})
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		SetPrincipal(c, p)
		c.Next()
	}
}
