package models

import (
	"time"

	"gorm.io/datatypes"
)

// ExerciseEntry is one logged set-group for one exercise, or a routine
// template row when Date is NULL. Template rows define routine membership
// and are excluded from all history aggregation.
type ExerciseEntry struct {
	ID       uint64          `gorm:"primaryKey;autoIncrement"`
	UserID   uint64          `gorm:"index;not null"`
	Date     *datatypes.Date `gorm:"index"`
	Workout  string          `gorm:"size:255;index"`
	Exercise string          `gorm:"size:255"`
	Sets     int
	Reps     int
	Weight   *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTemplate reports whether the row is routine-membership metadata
// rather than a performed session.
func (e ExerciseEntry) IsTemplate() bool {
	return e.Date == nil
}

// RoutineDraft is a scratch row: "exercise X is part of the routine user Y
// is currently building or editing". The whole set for a user is cleared
// and reseeded at the start of each edit.
type RoutineDraft struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	UserID      uint64 `gorm:"index;not null"`
	Exercise    string `gorm:"size:255;not null"`
	RoutineName string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CompletedSession records "user U performed routine W on date D",
// one row per completed session. Used only for aggregate statistics.
type CompletedSession struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement"`
	UserID    uint64         `gorm:"index;not null"`
	Date      datatypes.Date `gorm:"not null;index"`
	Workout   string         `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for ExerciseEntry
func (ExerciseEntry) TableName() string {
	return "exercise_entries"
}

// TableName overrides the table name for RoutineDraft
func (RoutineDraft) TableName() string {
	return "routine_drafts"
}

// TableName overrides the table name for CompletedSession
func (CompletedSession) TableName() string {
	return "completed_sessions"
}
