package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	// SessionUserKey is the session key holding the authenticated user id.
	SessionUserKey = "userID"
	// SessionFlashKey is the session key holding the one-shot flash message.
	SessionFlashKey = "flash"
	// LocalsUserKey is the request-scoped key handlers read the user id from.
	LocalsUserKey = "userID"
)

// RequireUser resolves the session into a request-scoped user id. Requests
// without a valid session are bounced to the login page with a flash.
func RequireUser(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
		}

		userID, ok := sess.Get(SessionUserKey).(uint64)
		if !ok || userID == 0 {
			sess.Set(SessionFlashKey, "Please log in to continue.")
			if err := sess.Save(); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
			}
			return c.Redirect("/login", fiber.StatusFound)
		}

		c.Locals(LocalsUserKey, userID)
		return c.Next()
	}
}
