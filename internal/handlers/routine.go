package handlers

import (
	"errors"
	"log"

	"github.com/Bryantbrewster/StrengthJournal/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

// RoutineHandler serves the routine builder and editor flows.
type RoutineHandler struct {
	DB    *gorm.DB
	Store *session.Store
}

// NewRoutinePage handles GET /new-routine. Opening the blank builder clears
// any leftover drafts.
func (h *RoutineHandler) NewRoutinePage(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	}

	if err := services.ClearDrafts(h.DB, userID); err != nil {
		log.Printf("new-routine failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not reset routine builder")
	}

	return c.Render("add_workout", fiber.Map{
		"Flash":        popFlash(c, h.Store),
		"ExerciseList": []string{},
	})
}

// AddExercise handles POST /new-routine: adds one exercise to the draft and
// re-renders the builder with the current list.
func (h *RoutineHandler) AddExercise(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	}

	exerciseName := c.FormValue("Exercise_Name")
	if exerciseName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Exercise_Name is required")
	}

	exercises, err := services.AddExercise(h.DB, userID, exerciseName)
	if err != nil {
		log.Printf("add exercise failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not add exercise")
	}

	return c.Render("add_workout", fiber.Map{
		"Flash":        popFlash(c, h.Store),
		"ExerciseList": exercises,
	})
}

// SubmitNewRoutine handles POST /new_routine: commits the draft under the
// chosen name.
func (h *RoutineHandler) SubmitNewRoutine(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	}

	routineName := c.FormValue("routine_name")
	if err := services.Commit(h.DB, userID, routineName); err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyRoutine):
			flash(c, h.Store, "Please add exercises to your new routine before submitting!")
			return c.Redirect("/new-routine", fiber.StatusFound)
		case errors.Is(err, services.ErrDuplicateRoutine):
			exercises, listErr := services.DraftExercises(h.DB, userID)
			if listErr != nil {
				log.Printf("draft list failed: %v", listErr)
				return fiber.NewError(fiber.StatusInternalServerError, "could not load draft")
			}
			return c.Render("add_workout", fiber.Map{
				"Flash":        "You already have a routine with that name, try adding a different routine!",
				"ExerciseList": exercises,
			})
		default:
			log.Printf("commit routine failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "could not save routine")
		}
	}

	return c.Redirect("/choose-a-workout", fiber.StatusFound)
}

// DeleteDuringCreation handles GET /delete?exercise_name=... from the builder.
func (h *RoutineHandler) DeleteDuringCreation(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	}

	exercises, err := services.RemoveExercise(h.DB, userID, c.Query("exercise_name"))
	if err != nil {
		log.Printf("delete from draft failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not remove exercise")
	}

	return c.Render("add_workout", fiber.Map{
		"Flash":        popFlash(c, h.Store),
		"ExerciseList": exercises,
	})
}

// DeleteFromRoutine handles GET /edit-routine?exercise_name=&routine_name=
// (also routed at /delete-from-routine): removes one exercise from the draft
// and re-renders the editor.
func (h *RoutineHandler) DeleteFromRoutine(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	}

	exercises, err := services.RemoveExercise(h.DB, userID, c.Query("exercise_name"))
	if err != nil {
		log.Printf("delete from routine failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not remove exercise")
	}

	return c.Render("edit_routine", fiber.Map{
		"ExerciseList": exercises,
		"RoutineName":  c.Query("routine_name"),
	})
}

// SaveRoutineEdits handles POST /save: sweeps the routine's entries under the
// new name, keeping only the exercises still drafted.
func (h *RoutineHandler) SaveRoutineEdits(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	}

	oldName := c.FormValue("old_routine_name")
	newName := c.FormValue("new_routine_name")
	if oldName == "" || newName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "old_routine_name and new_routine_name are required")
	}

	keep, err := services.DraftExercises(h.DB, userID)
	if err != nil {
		log.Printf("draft list failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not load draft")
	}

	if err := services.SaveEdits(h.DB, userID, oldName, newName, keep); err != nil {
		log.Printf("save edits failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not save routine edits")
	}

	return c.Render("index", fiber.Map{
		"Flash":    popFlash(c, h.Store),
		"LoggedIn": true,
	})
}
