package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the configured storefront origin with credentials. Preflight
// requests are answered with 200.
func CORS(origin string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins:              []string{strings.TrimSuffix(origin, "/")},
		AllowMethods:              []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:              []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", RequestIDHeader},
		ExposeHeaders:             []string{RequestIDHeader},
		AllowCredentials:          true,
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}
	return cors.New(cfg)
}
