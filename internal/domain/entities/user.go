package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 6

type User struct {
	Id        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name" validate:"required,min=2,max=100"`
	Email     string    `json:"email" validate:"required,email,max=100"`
	Password  string    `json:"-" validate:"required,min=6"`
}

func NewUser(name, email, password string) *User {
	now := time.Now().UTC()
	return &User{
		Id:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Password:  password,
	}
}

// NormalizeEmail is the canonical form used for uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) validate() error {
	if err := validateStruct(u); err != nil {
		return err
	}
	if u.CreatedAt.After(u.UpdatedAt) {
		return errors.New("created_at must be before updated_at")
	}
	return nil
}

func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares in constant time against the stored hash.
func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

func (u *User) Identity() Identity {
	return Identity{UserID: u.Id}
}

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ValidateCredentials checks the shape of a login request before any lookup.
func ValidateCredentials(email, password string) error {
	return validateStruct(credentials{Email: strings.TrimSpace(email), Password: password})
}
