package services

import (
	"errors"
	"fmt"

	"github.com/Bryantbrewster/StrengthJournal/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrEmptyRoutine is returned when committing a routine with no exercises.
	ErrEmptyRoutine = errors.New("routine has no exercises")
	// ErrDuplicateRoutine is returned when the chosen routine name is already in use.
	ErrDuplicateRoutine = errors.New("routine name already in use")
)

// The draft table is per-user scratch space with a clear-then-reseed
// lifecycle. Two tabs editing at once can lose each other's work; this is a
// known limitation of the single-user tool and is deliberately not serialized.

// StartEdit clears the user's drafts and reseeds them from the distinct
// exercises already recorded under routineName. Returns the seeded list.
func StartEdit(db *gorm.DB, userID uint64, routineName string) ([]string, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.RoutineDraft{}).Error; err != nil {
			return err
		}

		var exercises []string
		if err := tx.Model(&models.ExerciseEntry{}).
			Where("user_id = ? AND workout = ?", userID, routineName).
			Distinct("exercise").
			Pluck("exercise", &exercises).Error; err != nil {
			return err
		}

		for _, exercise := range exercises {
			draft := models.RoutineDraft{
				UserID:      userID,
				Exercise:    exercise,
				RoutineName: routineName,
			}
			if err := tx.Create(&draft).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start routine edit: %w", err)
	}

	return DraftExercises(db, userID)
}

// AddExercise inserts one draft row and returns the current draft list.
func AddExercise(db *gorm.DB, userID uint64, exerciseName string) ([]string, error) {
	draft := models.RoutineDraft{
		UserID:   userID,
		Exercise: exerciseName,
	}
	if err := db.Create(&draft).Error; err != nil {
		return nil, fmt.Errorf("failed to add exercise to draft: %w", err)
	}
	return DraftExercises(db, userID)
}

// RemoveExercise deletes matching draft rows and returns the remaining list.
func RemoveExercise(db *gorm.DB, userID uint64, exerciseName string) ([]string, error) {
	if err := db.Where("user_id = ? AND exercise = ?", userID, exerciseName).
		Delete(&models.RoutineDraft{}).Error; err != nil {
		return nil, fmt.Errorf("failed to remove exercise from draft: %w", err)
	}
	return DraftExercises(db, userID)
}

// ClearDrafts removes every draft row for the user. Called when the blank
// routine builder is opened.
func ClearDrafts(db *gorm.DB, userID uint64) error {
	if err := db.Where("user_id = ?", userID).Delete(&models.RoutineDraft{}).Error; err != nil {
		return fmt.Errorf("failed to clear drafts: %w", err)
	}
	return nil
}

// DraftExercises returns the distinct exercise names currently drafted.
// Order is query-derived, not stored.
func DraftExercises(db *gorm.DB, userID uint64) ([]string, error) {
	var exercises []string
	if err := db.Model(&models.RoutineDraft{}).
		Where("user_id = ?", userID).
		Distinct("exercise").
		Pluck("exercise", &exercises).Error; err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return exercises, nil
}

// Commit materializes the user's drafts into a named routine: one template
// entry (no date) per drafted exercise.
//
// The duplicate-name check runs across all users, not just the committing
// one. That matches the shipped behavior and is covered by a test; scoping it
// per user would be the obvious fix if product ever signs off.
//
// Drafts intentionally survive the commit so the builder page can keep
// editing; the next edit session clears them anyway.
func Commit(db *gorm.DB, userID uint64, newRoutineName string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var draftCount int64
		if err := tx.Model(&models.RoutineDraft{}).
			Where("user_id = ?", userID).
			Count(&draftCount).Error; err != nil {
			return fmt.Errorf("failed to count drafts: %w", err)
		}
		if draftCount == 0 {
			return ErrEmptyRoutine
		}

		var nameCount int64
		if err := tx.Model(&models.ExerciseEntry{}).
			Where("workout = ?", newRoutineName).
			Count(&nameCount).Error; err != nil {
			return fmt.Errorf("failed to check routine name: %w", err)
		}
		if nameCount > 0 {
			return ErrDuplicateRoutine
		}

		var drafts []models.RoutineDraft
		if err := tx.Where("user_id = ?", userID).Find(&drafts).Error; err != nil {
			return fmt.Errorf("failed to load drafts: %w", err)
		}

		for _, draft := range drafts {
			if err := tx.Model(&models.RoutineDraft{}).
				Where("id = ?", draft.ID).
				Update("routine_name", newRoutineName).Error; err != nil {
				return fmt.Errorf("failed to tag draft: %w", err)
			}

			entry := models.ExerciseEntry{
				UserID:   userID,
				Workout:  newRoutineName,
				Exercise: draft.Exercise,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to create routine entry: %w", err)
			}
		}
		return nil
	})
}

// SaveEdits applies a routine edit: every entry under oldName is renamed to
// newName, entries whose exercise is not in keep are deleted, and a template
// entry per kept exercise is re-inserted under newName so the routine's
// membership covers keep exactly. Kept exercises that already had a template
// row end up with a duplicate template; listings are distinct so this is
// invisible, and it matches the shipped behavior.
func SaveEdits(db *gorm.DB, userID uint64, oldName, newName string, keep []string) error {
	keepSet := make(map[string]struct{}, len(keep))
	for _, exercise := range keep {
		keepSet[exercise] = struct{}{}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var entries []models.ExerciseEntry
		if err := tx.Where("user_id = ? AND workout = ?", userID, oldName).
			Find(&entries).Error; err != nil {
			return fmt.Errorf("failed to load routine entries: %w", err)
		}

		for _, entry := range entries {
			if _, kept := keepSet[entry.Exercise]; !kept {
				if err := tx.Delete(&models.ExerciseEntry{}, entry.ID).Error; err != nil {
					return fmt.Errorf("failed to drop exercise %q: %w", entry.Exercise, err)
				}
				continue
			}
			if err := tx.Model(&models.ExerciseEntry{}).
				Where("id = ?", entry.ID).
				Update("workout", newName).Error; err != nil {
				return fmt.Errorf("failed to rename routine: %w", err)
			}
		}

		for _, exercise := range keep {
			entry := models.ExerciseEntry{
				UserID:   userID,
				Workout:  newName,
				Exercise: exercise,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to re-seed routine entry: %w", err)
			}
		}
		return nil
	})
}
