package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS configures cross-origin access for the frontend. Credentials must be
// allowed because the session cookies ride on cross-origin requests, which
// rules out the wildcard origin.
func CORS(frontendURL string) gin.HandlerFunc {
	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	if frontendURL != "" {
		origins = append(origins, frontendURL)
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Device-Id"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
