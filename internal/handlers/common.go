package handlers

import (
	"github.com/Bryantbrewster/StrengthJournal/internal/middleware"
	"github.com/Bryantbrewster/StrengthJournal/internal/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// currentUserID reads the authenticated user id placed by RequireUser.
func currentUserID(c *fiber.Ctx) (uint64, error) {
	userID, ok := c.Locals(middleware.LocalsUserKey).(uint64)
	if !ok || userID == 0 {
		return 0, &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "user not found in request context",
			Type:    "session",
		}
	}
	return userID, nil
}

// flash stores a one-shot message for the next rendered page.
func flash(c *fiber.Ctx, store *session.Store, message string) {
	sess, err := store.Get(c)
	if err != nil {
		return
	}
	sess.Set(middleware.SessionFlashKey, message)
	_ = sess.Save()
}

// popFlash consumes the pending flash message, if any.
func popFlash(c *fiber.Ctx, store *session.Store) string {
	sess, err := store.Get(c)
	if err != nil {
		return ""
	}
	message, _ := sess.Get(middleware.SessionFlashKey).(string)
	if message != "" {
		sess.Delete(middleware.SessionFlashKey)
		_ = sess.Save()
	}
	return message
}

// loginSession binds the session to the given user id.
func loginSession(c *fiber.Ctx, store *session.Store, userID uint64) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(middleware.SessionUserKey, userID)
	return sess.Save()
}

// logoutSession drops the whole session.
func logoutSession(c *fiber.Ctx, store *session.Store) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// loggedIn reports whether the request carries an authenticated session.
// Used by public pages to adjust navigation.
func loggedIn(c *fiber.Ctx, store *session.Store) bool {
	sess, err := store.Get(c)
	if err != nil {
		return false
	}
	userID, ok := sess.Get(middleware.SessionUserKey).(uint64)
	return ok && userID != 0
}
