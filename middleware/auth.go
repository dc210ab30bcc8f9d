package middleware

import (
	"strings"

	"hyurimbot/config"
	"hyurimbot/response"
	"hyurimbot/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware Bearer 토큰 검증
// 로그아웃으로 차단된 토큰은 만료 전이라도 거부한다
func AuthMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		username, userRole, _, err := services.ParseToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if config.RedisClient != nil && services.IsTokenBlacklisted(config.Ctx, config.RedisClient, tokenString) {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == userRole {
					hasRole = true
					break
				}
			}
			if !hasRole {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}

		c.Set("username", username)
		c.Set("userRole", userRole)
		c.Set("token", tokenString)
		c.Next()
	}
}
