package handlers

import (
	"log"
	"time"

	"github.com/Bryantbrewster/StrengthJournal/internal/config"
	"github.com/Bryantbrewster/StrengthJournal/internal/models"
	"github.com/Bryantbrewster/StrengthJournal/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

// DashboardHandler serves the aggregate statistics pages.
type DashboardHandler struct {
	DB    *gorm.DB
	Store *session.Store
	Cfg   *config.Config
}

// recordRow is the template shape of one personal record.
type recordRow struct {
	Exercise string
	Weight   float64
	Date     string
}

// Dashboard handles GET /dashboard
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	}

	stats, err := services.GatherDashboardStats(h.DB, userID, time.Now())
	if err != nil {
		log.Printf("dashboard failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not load dashboard")
	}

	routines, err := services.ListRoutines(h.DB, userID)
	if err != nil {
		log.Printf("dashboard failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not load dashboard")
	}

	return c.Render("dashboard", fiber.Map{
		"Flash":           popFlash(c, h.Store),
		"UniqueDays":      stats.UniqueDays,
		"UniqueRoutines":  stats.UniqueRoutines,
		"FavoriteRoutine": stats.FavoriteRoutine,
		"Histogram":       stats.Histogram,
		"Routines":        routines,
	})
}

// RoutineDashboard handles GET /routine-dashboard?routine=<name>
func (h *DashboardHandler) RoutineDashboard(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	}

	routineName := c.Query("routine")
	if routineName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "routine query parameter is required")
	}

	records, err := services.PersonalRecords(h.DB, userID, routineName)
	if err != nil {
		log.Printf("routine-dashboard failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not load personal records")
	}

	exercises, err := services.ExerciseListForRoutine(h.DB, userID, routineName)
	if err != nil {
		log.Printf("routine-dashboard failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not load exercises")
	}

	rows := make([]recordRow, len(records))
	for i, record := range records {
		rows[i] = recordRow{
			Exercise: record.Exercise,
			Weight:   record.Weight,
			Date:     models.FormatDate(record.Date),
		}
	}

	return c.Render("routine_dashboard", fiber.Map{
		"RoutineName":  routineName,
		"Records":      rows,
		"ExerciseList": exercises,
	})
}

// Health handles GET /health
func (h *DashboardHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
