package service

import (
	"fmt"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dverdugo/message-app/internal/database"
	"github.com/dverdugo/message-app/internal/models"
)

type UserService struct {
	db *database.Database
}

func NewUserService(db *database.Database) *UserService {
	return &UserService{db: db}
}

// Register creates a user with a bcrypt-hashed credential. A duplicate
// username surfaces as ErrUsernameTaken; nothing is written in that case.
func (s *UserService) Register(username, password, firstName, lastName string) (*models.User, error) {
	if username == "" || firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: username, first name and last name are required", ErrInvalidInput)
	}
	if err := checkPasswordStrength(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		IsActive:     true,
	}
	if err := s.db.CreateUser(user); err != nil {
		if database.IsDuplicate(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

// Authenticate resolves the username and compares the credential. Both a
// missing user and a wrong password return ErrInvalidCredentials so the
// caller cannot tell which one failed.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.db.FindUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	user, err := s.db.GetUser(id.String())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List() ([]models.User, error) {
	return s.db.ListUsers()
}

func (s *UserService) Deactivate(id uuid.UUID) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.db.DeactivateUser(id.String())
}

func checkPasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: at least 8 characters", ErrWeakPassword)
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return fmt.Errorf("%w: needs upper case, lower case and a digit", ErrWeakPassword)
	}
	return nil
}
