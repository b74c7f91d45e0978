package handlers

import (
	"fmt"
	"log"
	"strconv"

	"github.com/Bryantbrewster/StrengthJournal/internal/models"
	"github.com/Bryantbrewster/StrengthJournal/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

// WorkoutHandler serves routine selection and session recording.
type WorkoutHandler struct {
	DB    *gorm.DB
	Store *session.Store
}

// entryRow feeds the indexed inputs of the session entry form.
type entryRow struct {
	Index    int
	Exercise string
}

// ChooseWorkout handles GET /choose-a-workout
func (h *WorkoutHandler) ChooseWorkout(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	}

	routines, err := services.ListRoutines(h.DB, userID)
	if err != nil {
		log.Printf("choose-a-workout failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not load routines")
	}

	return c.Render("workout", fiber.Map{
		"Flash":       popFlash(c, h.Store),
		"WorkoutList": routines,
	})
}

// EnterYourStats handles POST /enter-your-stats. The page posts one of three
// buttons over the selected routine.
func (h *WorkoutHandler) EnterYourStats(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	}

	routineName := c.FormValue("Workout_ListBox")

	switch c.FormValue("button") {
	case "Record a Workout":
		workoutDate := c.FormValue("workout_date")
		exercises, err := services.ListExercises(h.DB, userID, routineName)
		if err != nil {
			log.Printf("enter-your-stats failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "could not load exercises")
		}

		rows := make([]entryRow, len(exercises))
		for i, exercise := range exercises {
			rows[i] = entryRow{Index: i + 1, Exercise: exercise}
		}
		return c.Render("entry", fiber.Map{
			"WorkoutName":       routineName,
			"WorkoutDate":       workoutDate,
			"NumberOfExercises": len(exercises),
			"Rows":              rows,
		})

	case "Edit Routine":
		exercises, err := services.StartEdit(h.DB, userID, routineName)
		if err != nil {
			log.Printf("edit routine failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "could not start routine edit")
		}
		return c.Render("edit_routine", fiber.Map{
			"ExerciseList": exercises,
			"RoutineName":  routineName,
		})

	case "Delete Routine":
		if err := services.DeleteRoutine(h.DB, userID, routineName); err != nil {
			log.Printf("delete routine failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete routine")
		}
		return c.Redirect("/choose-a-workout", fiber.StatusFound)

	default:
		return c.Redirect("/choose-a-workout", fiber.StatusFound)
	}
}

// RecordCompleted handles POST / — the submitted session entry form, with
// Number_of_Exercises indexed Workout{i}/Exercise{i}/Sets{i}/Reps{i}/Weight{i}
// fields. A blank weight records as no load; a missing or malformed field is
// a 400, not a crash.
func (h *WorkoutHandler) RecordCompleted(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	}

	count, err := strconv.Atoi(c.FormValue("Number_of_Exercises"))
	if err != nil || count < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "Number_of_Exercises must be a positive number")
	}

	date, err := models.ParseDate(c.FormValue("workout_date"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "workout_date must be a valid yyyy-mm-dd date")
	}

	var routineName string
	entries := make([]services.SessionEntry, 0, count)
	for i := 1; i <= count; i++ {
		workout := c.FormValue(fmt.Sprintf("Workout%d", i))
		exercise := c.FormValue(fmt.Sprintf("Exercise%d", i))
		setsValue := c.FormValue(fmt.Sprintf("Sets%d", i))
		repsValue := c.FormValue(fmt.Sprintf("Reps%d", i))
		weightValue := c.FormValue(fmt.Sprintf("Weight%d", i))

		if workout == "" || exercise == "" || setsValue == "" || repsValue == "" {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("missing form fields for exercise %d", i))
		}

		sets, err := strconv.Atoi(setsValue)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Sets%d must be a number", i))
		}
		reps, err := strconv.Atoi(repsValue)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Reps%d must be a number", i))
		}

		var weight *float64
		if weightValue != "" {
			w, err := strconv.ParseFloat(weightValue, 64)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Weight%d must be a number", i))
			}
			weight = &w
		}

		if routineName == "" {
			routineName = workout
		}
		entries = append(entries, services.SessionEntry{
			Exercise: exercise,
			Sets:     sets,
			Reps:     reps,
			Weight:   weight,
		})
	}

	if err := services.RecordSession(h.DB, userID, routineName, date, entries); err != nil {
		log.Printf("record session failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not record workout")
	}

	return c.Redirect("/", fiber.StatusFound)
}
