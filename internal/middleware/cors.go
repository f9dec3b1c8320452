package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/syncit-hq/syncit-api/internal/config"
)

func CORS(settings *config.Settings) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     settings.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
		AllowCredentials: false,
	})
}
