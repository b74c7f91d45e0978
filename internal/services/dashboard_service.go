package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Bryantbrewster/StrengthJournal/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultHistogramLimit caps the frequency histogram at the N most recent
// completed sessions.
const DefaultHistogramLimit = 10

// PersonalRecord is the heaviest logged entry for one exercise.
type PersonalRecord struct {
	Exercise string
	Weight   float64
	Date     datatypes.Date
}

// DashboardStats is the view model for the main dashboard page.
type DashboardStats struct {
	UniqueDays      int64
	UniqueRoutines  int64
	FavoriteRoutine string
	Histogram       map[string]int64
}

// windowStart returns the beginning of the last-30-day window ending at now.
func windowStart(now time.Time) datatypes.Date {
	return models.NewDate(now.AddDate(0, 0, -30))
}

// UniqueDaysLast30 counts the distinct dates the user completed any session
// in the last 30 days. Multiple sessions on one date count once.
func UniqueDaysLast30(db *gorm.DB, userID uint64, now time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.CompletedSession{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, windowStart(now), models.NewDate(now)).
		Distinct("date").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count workout days: %w", err)
	}
	return count, nil
}

// UniqueRoutinesLast30 counts the distinct routines performed in the window.
func UniqueRoutinesLast30(db *gorm.DB, userID uint64, now time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.CompletedSession{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, windowStart(now), models.NewDate(now)).
		Distinct("workout").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count routines: %w", err)
	}
	return count, nil
}

// FavoriteRoutineLast30 returns the routine completed most often in the
// window, or "" when the window is empty. Ties resolve to whichever row the
// store orders first; the tie-break is implementation-defined.
func FavoriteRoutineLast30(db *gorm.DB, userID uint64, now time.Time) (string, error) {
	var row struct {
		Workout string
		Cnt     int64
	}
	err := db.Model(&models.CompletedSession{}).
		Select("workout, COUNT(*) AS cnt").
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, windowStart(now), models.NewDate(now)).
		Group("workout").
		Order("cnt DESC").
		Limit(1).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to find favorite routine: %w", err)
	}
	return row.Workout, nil
}

// WorkoutFrequencyHistogram counts routine occurrences among the limit most
// recent completed sessions. Recency-limited first, then counted; this is not
// a top-N-by-frequency query.
func WorkoutFrequencyHistogram(db *gorm.DB, userID uint64, limit int) (map[string]int64, error) {
	if limit <= 0 {
		limit = DefaultHistogramLimit
	}

	var recent []models.CompletedSession
	err := db.Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&recent).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent sessions: %w", err)
	}

	histogram := make(map[string]int64, len(recent))
	for _, session := range recent {
		histogram[session.Workout]++
	}
	return histogram, nil
}

// PersonalRecords returns, per exercise ever logged under the routine, the
// max-weight entry. Anti-join: an entry qualifies when no other dated entry
// of the same exercise carries strictly greater weight. NULL-weight entries
// never qualify but do not block other entries' records.
func PersonalRecords(db *gorm.DB, userID uint64, routineName string) ([]PersonalRecord, error) {
	var entries []models.ExerciseEntry
	err := db.Where("user_id = ? AND workout = ? AND date IS NOT NULL AND weight IS NOT NULL", userID, routineName).
		Where(`NOT EXISTS (
			SELECT 1 FROM exercise_entries e2
			WHERE e2.user_id = exercise_entries.user_id
			  AND e2.workout = exercise_entries.workout
			  AND e2.exercise = exercise_entries.exercise
			  AND e2.date IS NOT NULL
			  AND e2.weight > exercise_entries.weight
		)`).
		Order("exercise, date").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute personal records: %w", err)
	}

	// Equal-weight ties survive the anti-join; keep the first per exercise.
	records := make([]PersonalRecord, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, dup := seen[entry.Exercise]; dup {
			continue
		}
		seen[entry.Exercise] = struct{}{}
		records = append(records, PersonalRecord{
			Exercise: entry.Exercise,
			Weight:   *entry.Weight,
			Date:     *entry.Date,
		})
	}
	return records, nil
}

// ExerciseListForRoutine returns the distinct exercises actually performed
// under the routine. Template rows are excluded.
func ExerciseListForRoutine(db *gorm.DB, userID uint64, routineName string) ([]string, error) {
	var exercises []string
	err := db.Model(&models.ExerciseEntry{}).
		Where("user_id = ? AND workout = ? AND date IS NOT NULL", userID, routineName).
		Distinct("exercise").
		Pluck("exercise", &exercises).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list performed exercises: %w", err)
	}
	return exercises, nil
}

// GatherDashboardStats assembles the dashboard view model in one place.
func GatherDashboardStats(db *gorm.DB, userID uint64, now time.Time) (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.UniqueDays, err = UniqueDaysLast30(db, userID, now); err != nil {
		return stats, err
	}
	if stats.UniqueRoutines, err = UniqueRoutinesLast30(db, userID, now); err != nil {
		return stats, err
	}
	if stats.FavoriteRoutine, err = FavoriteRoutineLast30(db, userID, now); err != nil {
		return stats, err
	}
	if stats.Histogram, err = WorkoutFrequencyHistogram(db, userID, DefaultHistogramLimit); err != nil {
		return stats, err
	}
	return stats, nil
}
