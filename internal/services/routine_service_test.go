package services_test

import (
	"testing"
	"time"

	"github.com/Bryantbrewster/StrengthJournal/internal/models"
	"github.com/Bryantbrewster/StrengthJournal/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userOne uint64 = 1
	userTwo uint64 = 2
)

func TestAddAndRemoveDraftExercises(t *testing.T) {
	db := setupTestDB(t)

	list, err := services.AddExercise(db, userOne, "Squat")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Squat"}, list)

	list, err = services.AddExercise(db, userOne, "Bench")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Squat", "Bench"}, list)

	list, err = services.RemoveExercise(db, userOne, "Squat")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Bench"}, list)
}

func TestCommitEmptyRoutine(t *testing.T) {
	db := setupTestDB(t)

	err := services.Commit(db, userOne, "LegDay")
	assert.ErrorIs(t, err, services.ErrEmptyRoutine)
}

func TestCommitCreatesTemplateEntries(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.AddExercise(db, userOne, "Squat")
	require.NoError(t, err)
	_, err = services.AddExercise(db, userOne, "Bench")
	require.NoError(t, err)

	require.NoError(t, services.Commit(db, userOne, "LegDay"))

	var entries []models.ExerciseEntry
	require.NoError(t, db.Where("user_id = ? AND workout = ?", userOne, "LegDay").Find(&entries).Error)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.True(t, entry.IsTemplate(), "committed entries are templates, not history")
	}

	// Drafts survive the commit so the builder can keep editing.
	drafts, err := services.DraftExercises(db, userOne)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Squat", "Bench"}, drafts)
}

// The duplicate-name check runs across all users. This pins the shipped
// behavior; a per-user scope would be the intuitive alternative.
func TestCommitDuplicateNameCheckIsGlobal(t *testing.T) {
	db := setupTestDB(t)

	seedTemplate(t, db, userOne, "Shared", "Squat")

	_, err := services.AddExercise(db, userTwo, "Bench")
	require.NoError(t, err)

	err = services.Commit(db, userTwo, "Shared")
	assert.ErrorIs(t, err, services.ErrDuplicateRoutine,
		"another user's routine name blocks the commit")
}

func TestStartEditSeedsDraftsFromRoutine(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	seedTemplate(t, db, userOne, "LegDay", "Squat")
	seedEntry(t, db, userOne, daysAgo(now, 2), "LegDay", "Squat", 3, 5, weight(100))
	seedEntry(t, db, userOne, daysAgo(now, 2), "LegDay", "Lunge", 3, 10, nil)

	// A stale draft from another edit is swept away first
	_, err := services.AddExercise(db, userOne, "Curl")
	require.NoError(t, err)

	list, err := services.StartEdit(db, userOne, "LegDay")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Squat", "Lunge"}, list)
}

func TestSaveEditsRenamesAndPrunes(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	seedEntry(t, db, userOne, daysAgo(now, 5), "A", "Squat", 3, 5, weight(100))
	seedEntry(t, db, userOne, daysAgo(now, 5), "A", "Bench", 3, 5, weight(60))

	require.NoError(t, services.SaveEdits(db, userOne, "A", "B", []string{"Squat"}))

	var aCount int64
	require.NoError(t, db.Model(&models.ExerciseEntry{}).
		Where("user_id = ? AND workout = ?", userOne, "A").
		Count(&aCount).Error)
	assert.Zero(t, aCount, "no row may keep the old routine name")

	var benchCount int64
	require.NoError(t, db.Model(&models.ExerciseEntry{}).
		Where("user_id = ? AND workout = ? AND exercise = ?", userOne, "B", "Bench").
		Count(&benchCount).Error)
	assert.Zero(t, benchCount, "dropped exercises are deleted")

	var squats []models.ExerciseEntry
	require.NoError(t, db.Where("user_id = ? AND workout = ? AND exercise = ?", userOne, "B", "Squat").
		Find(&squats).Error)
	require.NotEmpty(t, squats, "kept exercises carry the new routine name")

	// The sweep re-seeds a template row per kept exercise
	var templates int64
	require.NoError(t, db.Model(&models.ExerciseEntry{}).
		Where("user_id = ? AND workout = ? AND exercise = ? AND date IS NULL", userOne, "B", "Squat").
		Count(&templates).Error)
	assert.EqualValues(t, 1, templates)
}
