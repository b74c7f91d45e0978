package services_test

import (
	"testing"

	"github.com/Bryantbrewster/StrengthJournal/internal/models"
	"github.com/Bryantbrewster/StrengthJournal/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTwoAccountsAndAuthenticate(t *testing.T) {
	db := setupTestDB(t)

	alice, err := services.Register(db, "alice@example.com", "Alice", "Lifts", "squat-pass")
	require.NoError(t, err)
	bob, err := services.Register(db, "bob@example.com", "Bob", "Benches", "bench-pass")
	require.NoError(t, err)
	require.NotEqual(t, alice.ID, bob.ID)

	// Each account logs in with its own credentials
	got, err := services.Authenticate(db, "alice@example.com", "squat-pass")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	got, err = services.Authenticate(db, "bob@example.com", "bench-pass")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.ID)

	// Crossed credentials do not
	_, err = services.Authenticate(db, "alice@example.com", "bench-pass")
	assert.ErrorIs(t, err, services.ErrWrongPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.Register(db, "alice@example.com", "Alice", "Lifts", "pass-one")
	require.NoError(t, err)

	_, err = services.Register(db, "alice@example.com", "Imposter", "Lifts", "pass-two")
	assert.ErrorIs(t, err, services.ErrEmailTaken)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "duplicate signup must not create a second row")
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.Authenticate(db, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, services.ErrUnknownEmail)
}

func TestPasswordHashIsNotPlaintext(t *testing.T) {
	db := setupTestDB(t)

	user, err := services.Register(db, "alice@example.com", "Alice", "Lifts", "squat-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "squat-pass", user.PasswordHash)
	assert.True(t, services.CheckPasswordHash("squat-pass", user.PasswordHash))
	assert.False(t, services.CheckPasswordHash("wrong", user.PasswordHash))
}
