package usecases

import (
	"errors"
	"fmt"
	"strings"

	"energy-dashboard/auth"
	"energy-dashboard/entities"
	"energy-dashboard/repositories"

	"gorm.io/gorm"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// Default device provisioned alongside every new account.
const (
	defaultTechnology   = "Solar"
	defaultSystemSizeKW = 6.0
	defaultLocationLat  = 34.0522
	defaultLocationLon  = -118.2437
)

// Identity is the minimal authenticated-user shape. It deliberately carries
// no password hash so the hash can never leak into a session payload.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthUseCase struct {
	Users repositories.UserRepository
}

func NewAuthUseCase(users repositories.UserRepository) *AuthUseCase {
	return &AuthUseCase{Users: users}
}

// Register creates a new user plus their default device in one transaction
// and returns the new user id.
func (uc *AuthUseCase) Register(name, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return "", ErrMissingFields
	}

	existing, err := uc.Users.FindByEmail(email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	user := &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	device := &entities.Device{
		Name:         fmt.Sprintf("%s's Primary Solar System", name),
		Technology:   defaultTechnology,
		SystemSizeKW: defaultSystemSizeKW,
		LocationLat:  defaultLocationLat,
		LocationLon:  defaultLocationLon,
	}

	if err := uc.Users.CreateWithDevice(user, device); err != nil {
		// A concurrent registration can slip past the lookup above; the
		// unique index on email is the source of truth.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrEmailTaken
		}
		return "", err
	}
	return user.ID, nil
}

// VerifyCredentials authenticates an email/password pair. Unknown email and
// wrong password fail with the same error so responses cannot be used to
// enumerate accounts.
func (uc *AuthUseCase) VerifyCredentials(email, password string) (*Identity, error) {
	user, err := uc.Users.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &Identity{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}
