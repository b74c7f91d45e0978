package services

import (
	"errors"
	"fmt"

	"github.com/Bryantbrewster/StrengthJournal/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUnknownEmail is returned when no account exists for a login email.
	ErrUnknownEmail = errors.New("unknown email")
	// ErrWrongPassword is returned when the password does not match the stored hash.
	ErrWrongPassword = errors.New("wrong password")
)

// HashPassword produces a bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches the stored bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register creates a new account. The email uniqueness check happens before
// the insert; the unique index on users.email is the backstop for the race.
func Register(db *gorm.DB, email, firstName, lastName, password string) (*models.User, error) {
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &user, nil
}

// Authenticate looks up the account by email and verifies the password.
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownEmail
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if !CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrWrongPassword
	}

	return &user, nil
}
