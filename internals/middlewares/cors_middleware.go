// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"gerejaku_backend/internals/configs"
)

// CorsMiddleware builds the CORS middleware for the admin frontend.
func CorsMiddleware() fiber.Handler {
	origins := []string{
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	}
	if configs.FrontendURL != "" {
		origins = append(origins, configs.FrontendURL)
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	})
}
