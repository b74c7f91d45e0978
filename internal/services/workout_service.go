package services

import (
	"fmt"

	"github.com/Bryantbrewster/StrengthJournal/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SessionEntry is one exercise's stats in a submitted workout session.
// A nil Weight means the set was bodyweight / no load.
type SessionEntry struct {
	Exercise string
	Sets     int
	Reps     int
	Weight   *float64
}

// ListRoutines returns the distinct workout names among the user's entries.
// Template rows count: a committed routine shows up before it is ever
// performed.
func ListRoutines(db *gorm.DB, userID uint64) ([]string, error) {
	var routines []string
	if err := db.Model(&models.ExerciseEntry{}).
		Where("user_id = ?", userID).
		Distinct("workout").
		Pluck("workout", &routines).Error; err != nil {
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}
	return routines, nil
}

// ListExercises returns the distinct exercise names under the routine.
func ListExercises(db *gorm.DB, userID uint64, routineName string) ([]string, error) {
	var exercises []string
	if err := db.Model(&models.ExerciseEntry{}).
		Where("user_id = ? AND workout = ?", userID, routineName).
		Distinct("exercise").
		Pluck("exercise", &exercises).Error; err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return exercises, nil
}

// RecordSession persists a completed workout: one dated entry per exercise
// plus one completed-session row. All writes share one transaction to keep
// partial commits off the table for store-level failures.
func RecordSession(db *gorm.DB, userID uint64, routineName string, date datatypes.Date, entries []SessionEntry) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, se := range entries {
			d := date
			entry := models.ExerciseEntry{
				UserID:   userID,
				Date:     &d,
				Workout:  routineName,
				Exercise: se.Exercise,
				Sets:     se.Sets,
				Reps:     se.Reps,
				Weight:   se.Weight,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to record %q: %w", se.Exercise, err)
			}
		}

		session := models.CompletedSession{
			UserID:  userID,
			Date:    date,
			Workout: routineName,
		}
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("failed to record completed session: %w", err)
		}
		return nil
	})
}

// DeleteRoutine removes every one of the user's entries for the routine,
// template rows and history alike.
func DeleteRoutine(db *gorm.DB, userID uint64, routineName string) error {
	if err := db.Where("user_id = ? AND workout = ?", userID, routineName).
		Delete(&models.ExerciseEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete routine: %w", err)
	}
	return nil
}
