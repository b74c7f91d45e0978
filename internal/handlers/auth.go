package handlers

import (
	"errors"
	"log"

	"github.com/Bryantbrewster/StrengthJournal/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

// AuthHandler serves the landing page and the account routes.
type AuthHandler struct {
	DB    *gorm.DB
	Store *session.Store
}

// Home handles GET /
func (h *AuthHandler) Home(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"Flash":    popFlash(c, h.Store),
		"LoggedIn": loggedIn(c, h.Store),
	})
}

// ShowCreateAccount handles GET /create-account
func (h *AuthHandler) ShowCreateAccount(c *fiber.Ctx) error {
	return c.Render("create_account", fiber.Map{
		"Flash": popFlash(c, h.Store),
	})
}

// CreateAccount handles POST /create-account
func (h *AuthHandler) CreateAccount(c *fiber.Ctx) error {
	email := c.FormValue("email")
	firstName := c.FormValue("first_name")
	lastName := c.FormValue("last_name")
	password1 := c.FormValue("password1")
	password2 := c.FormValue("password2")

	// Some forms post the password under "password", others only under the
	// confirmation pair.
	password := c.FormValue("password")
	if password == "" {
		password = password1
	}

	if password1 != password2 {
		flash(c, h.Store, "The entered passwords do not match.")
		return c.Redirect("/create-account", fiber.StatusFound)
	}

	user, err := services.Register(h.DB, email, firstName, lastName, password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			flash(c, h.Store, "There is already an account associated with that email, please use a different email or log in instead!")
			return c.Redirect("/create-account", fiber.StatusFound)
		}
		log.Printf("create-account failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not create account")
	}

	if err := loginSession(c, h.Store, user.ID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
	}
	return c.Redirect("/", fiber.StatusFound)
}

// ShowLogin handles GET /login
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Flash": popFlash(c, h.Store),
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := services.Authenticate(h.DB, email, password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownEmail):
			flash(c, h.Store, "The email you entered is not associated with an account, please try again.")
			return c.Redirect("/login", fiber.StatusFound)
		case errors.Is(err, services.ErrWrongPassword):
			flash(c, h.Store, "Incorrect password, please try again.")
			return c.Redirect("/login", fiber.StatusFound)
		default:
			log.Printf("login failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "could not log in")
		}
	}

	if err := loginSession(c, h.Store, user.ID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
	}
	return c.Redirect("/choose-a-workout", fiber.StatusFound)
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := logoutSession(c, h.Store); err != nil {
		log.Printf("logout failed: %v", err)
	}
	return c.Redirect("/", fiber.StatusFound)
}
