package app

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/cha0jun/leavey/internal/shared/apperror"
	"github.com/cha0jun/leavey/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

type HealthResponse struct {
	Status      string            `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Environment string            `json:"environment"`
	Checks      map[string]string `json:"checks"`
}

// Health runs every check with a short deadline. Any failure turns the
// response into 503 so load balancers drain the instance.
func Health(env string, checks map[string]HealthCheck) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Environment: env,
			Checks:      make(map[string]string, len(checks)),
		}
		healthy := true
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				payload.Checks[name] = err.Error()
				payload.Status = "degraded"
				healthy = false
				continue
			}
			payload.Checks[name] = "ok"
		}

		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "dependency unavailable", payload)
			return
		}
		response.Success(c, http.StatusOK, payload, nil)
	}
}
