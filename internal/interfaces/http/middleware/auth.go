package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quarters/internal/infrastructure/auth"
	"quarters/internal/shared/authorization"
	"quarters/internal/shared/logger"
	"quarters/internal/shared/utils"
)

// ContextKeyActor is the gin context key holding the resolved actor.
const ContextKeyActor = "actor"

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth resolves the bearer token into an authorization.Actor and
// stores it in the request context. Every work-order route runs behind it;
// handlers never see an unauthenticated request.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		actor, err := m.jwtService.Validate(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyActor, actor)
		c.Next()
	}
}

// ActorFromContext returns the actor stored by RequireAuth. The zero Actor
// means the middleware did not run, which is a routing bug.
func ActorFromContext(c *gin.Context) authorization.Actor {
	v, ok := c.Get(ContextKeyActor)
	if !ok {
		return authorization.Actor{}
	}
	actor, _ := v.(authorization.Actor)
	return actor
}
