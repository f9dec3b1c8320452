package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/syncit-hq/syncit-api/internal/database"
)

const dbSessionKey = "db_session"

// DBSession opens a fresh database session scoped to the request and
// stores it in the request locals. The session is bound to the request
// context, so an aborted connection cancels in-flight queries; pooled
// connections are returned when each statement finishes, on every exit
// path.
func DBSession(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(dbSessionKey, database.Session(db, c.UserContext()))
		return c.Next()
	}
}

// Session returns the request-scoped database session.
func Session(c *fiber.Ctx) *gorm.DB {
	db, _ := c.Locals(dbSessionKey).(*gorm.DB)
	return db
}
