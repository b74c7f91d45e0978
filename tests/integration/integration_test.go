package integration_test

import (
	"testing"
	"time"

	"github.com/Bryantbrewster/StrengthJournal/internal/config"
	"github.com/Bryantbrewster/StrengthJournal/internal/database"
	"github.com/Bryantbrewster/StrengthJournal/internal/models"
	"github.com/Bryantbrewster/StrengthJournal/internal/services"
	"github.com/Bryantbrewster/StrengthJournal/tests/helpers"
	"gorm.io/gorm"
)

// TestWithMariaDB exercises the full workout-log flow against a real MariaDB
// container instead of in-memory SQLite.
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	mariadb, err := helpers.StartMariaDB(t)
	if err != nil {
		t.Fatalf("Failed to start MariaDB: %v", err)
	}
	defer mariadb.Terminate(t)

	cfg := &config.Config{
		DBType:            "mysql",
		DBHost:            mariadb.Host,
		DBPort:            mariadb.Port,
		DBDatabase:        mariadb.Database,
		DBUser:            mariadb.User,
		DBPassword:        mariadb.Password,
		DBConnectionLimit: 5,
	}

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Run("RegisterAndAuthenticate", func(t *testing.T) {
		testRegisterAndAuthenticate(t, db)
	})

	t.Run("RoutineLifecycle", func(t *testing.T) {
		testRoutineLifecycle(t, db)
	})

	t.Run("SessionRecordingAndStats", func(t *testing.T) {
		testSessionRecordingAndStats(t, db)
	})

	t.Run("HealthCheck", func(t *testing.T) {
		result := services.HealthCheck(cfg, db)
		if result.Status != "healthy" {
			t.Errorf("Expected healthy, got: %s (%s)", result.Status, result.ErrorMessage)
		}
		if result.Database != "ok" {
			t.Errorf("Expected database ok, got: %s", result.Database)
		}
	})
}

func testRegisterAndAuthenticate(t *testing.T, db *gorm.DB) {
	user, err := services.Register(db, "mariadb@example.com", "Maria", "DB", "long-password")
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	authed, err := services.Authenticate(db, "mariadb@example.com", "long-password")
	if err != nil {
		t.Fatalf("Failed to authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Errorf("Expected user %d, got %d", user.ID, authed.ID)
	}

	if _, err := services.Register(db, "mariadb@example.com", "Maria", "DB", "other"); err == nil {
		t.Error("Expected duplicate email to be rejected")
	}
}

func testRoutineLifecycle(t *testing.T, db *gorm.DB) {
	user, err := services.Register(db, "routines@example.com", "Rou", "Tine", "long-password")
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	if _, err := services.AddExercise(db, user.ID, "Squat"); err != nil {
		t.Fatalf("Failed to add exercise: %v", err)
	}
	if _, err := services.AddExercise(db, user.ID, "Deadlift"); err != nil {
		t.Fatalf("Failed to add exercise: %v", err)
	}
	if err := services.Commit(db, user.ID, "Lower Body"); err != nil {
		t.Fatalf("Failed to commit routine: %v", err)
	}

	routines, err := services.ListRoutines(db, user.ID)
	if err != nil {
		t.Fatalf("Failed to list routines: %v", err)
	}
	if len(routines) != 1 || routines[0] != "Lower Body" {
		t.Errorf("Expected [Lower Body], got %v", routines)
	}

	exercises, err := services.ListExercises(db, user.ID, "Lower Body")
	if err != nil {
		t.Fatalf("Failed to list exercises: %v", err)
	}
	if len(exercises) != 2 {
		t.Errorf("Expected 2 exercises, got %v", exercises)
	}

	// Rename and prune through the editor path.
	if _, err := services.StartEdit(db, user.ID, "Lower Body"); err != nil {
		t.Fatalf("Failed to start edit: %v", err)
	}
	if _, err := services.RemoveExercise(db, user.ID, "Deadlift"); err != nil {
		t.Fatalf("Failed to remove exercise: %v", err)
	}
	keep, err := services.DraftExercises(db, user.ID)
	if err != nil {
		t.Fatalf("Failed to list drafts: %v", err)
	}
	if err := services.SaveEdits(db, user.ID, "Lower Body", "Leg Day", keep); err != nil {
		t.Fatalf("Failed to save edits: %v", err)
	}

	routines, err = services.ListRoutines(db, user.ID)
	if err != nil {
		t.Fatalf("Failed to list routines: %v", err)
	}
	if len(routines) != 1 || routines[0] != "Leg Day" {
		t.Errorf("Expected [Leg Day] after rename, got %v", routines)
	}
}

func testSessionRecordingAndStats(t *testing.T, db *gorm.DB) {
	user, err := services.Register(db, "stats@example.com", "Sta", "Ts", "long-password")
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	now := time.Now()
	w := 102.5
	for i := 0; i < 3; i++ {
		date := models.NewDate(now.AddDate(0, 0, -i))
		err := services.RecordSession(db, user.ID, "Push Day", date, []services.SessionEntry{
			{Exercise: "Bench", Sets: 3, Reps: 5, Weight: &w},
			{Exercise: "Dips", Sets: 3, Reps: 10},
		})
		if err != nil {
			t.Fatalf("Failed to record session: %v", err)
		}
	}

	stats, err := services.GatherDashboardStats(db, user.ID, now)
	if err != nil {
		t.Fatalf("Failed to gather stats: %v", err)
	}
	if stats.UniqueDays != 3 {
		t.Errorf("Expected 3 unique days, got %d", stats.UniqueDays)
	}
	if stats.UniqueRoutines != 1 {
		t.Errorf("Expected 1 unique routine, got %d", stats.UniqueRoutines)
	}
	if stats.FavoriteRoutine != "Push Day" {
		t.Errorf("Expected favorite Push Day, got %q", stats.FavoriteRoutine)
	}
	if stats.Histogram["Push Day"] != 3 {
		t.Errorf("Expected 3 Push Day sessions in histogram, got %d", stats.Histogram["Push Day"])
	}

	records, err := services.PersonalRecords(db, user.ID, "Push Day")
	if err != nil {
		t.Fatalf("Failed to load personal records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record (Dips has no weight), got %d", len(records))
	}
	if records[0].Exercise != "Bench" || records[0].Weight != 102.5 {
		t.Errorf("Expected Bench@102.5, got %s@%v", records[0].Exercise, records[0].Weight)
	}
}
