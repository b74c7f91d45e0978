package services_test

import (
	"testing"
	"time"

	"github.com/Bryantbrewster/StrengthJournal/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.ExerciseEntry{},
		&models.RoutineDraft{},
		&models.CompletedSession{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// daysAgo builds a calendar date n days before now.
func daysAgo(now time.Time, n int) datatypes.Date {
	return models.NewDate(now.AddDate(0, 0, -n))
}

// weight is shorthand for a non-nil weight value.
func weight(w float64) *float64 {
	return &w
}

// seedEntry inserts one dated exercise entry.
func seedEntry(t *testing.T, db *gorm.DB, userID uint64, date datatypes.Date, workout, exercise string, sets, reps int, w *float64) {
	t.Helper()
	entry := models.ExerciseEntry{
		UserID:   userID,
		Date:     &date,
		Workout:  workout,
		Exercise: exercise,
		Sets:     sets,
		Reps:     reps,
		Weight:   w,
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("Failed to seed entry: %v", err)
	}
}

// seedTemplate inserts one routine-template entry (no date).
func seedTemplate(t *testing.T, db *gorm.DB, userID uint64, workout, exercise string) {
	t.Helper()
	entry := models.ExerciseEntry{
		UserID:   userID,
		Workout:  workout,
		Exercise: exercise,
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("Failed to seed template entry: %v", err)
	}
}

// seedSession inserts one completed-session row.
func seedSession(t *testing.T, db *gorm.DB, userID uint64, date datatypes.Date, workout string) {
	t.Helper()
	session := models.CompletedSession{
		UserID:  userID,
		Date:    date,
		Workout: workout,
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("Failed to seed session: %v", err)
	}
}
