package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-roster/internal/service"
	appErrors "github.com/noah-isme/sma-roster/pkg/errors"
	"github.com/noah-isme/sma-roster/pkg/response"
)

// ContextOperatorKey is the gin context key storing the validated token claims.
const ContextOperatorKey = "operator"

// JWT protects routes by requiring a valid bearer token.
func JWT(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Abort(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			return
		}

		claims, err := tokens.Validate(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(ContextOperatorKey, claims)
		c.Next()
	}
}
