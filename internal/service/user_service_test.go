package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	users := NewUserService(newTestDB(t))

	user, err := users.Register("ana", "Password1", "Ana", "Lopez")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.PasswordHash == "Password1" {
		t.Fatal("password stored in clear")
	}
	if !user.IsActive {
		t.Error("new user should be active")
	}

	got, err := users.Authenticate("ana", "Password1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("authenticated wrong user: %s", got.ID)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := NewUserService(newTestDB(t))

	registerUser(t, users, "ana", "Ana", "Lopez")
	_, err := users.Register("ana", "Password1", "Ana", "Other")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("got %v, want ErrUsernameTaken", err)
	}
}

func TestRegisterPasswordStrength(t *testing.T) {
	users := NewUserService(newTestDB(t))

	cases := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1"},
		{"no upper case", "password1"},
		{"no lower case", "PASSWORD1"},
		{"no digit", "Passwordx"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := users.Register("u_"+tc.name, tc.password, "A", "B")
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("got %v, want ErrWeakPassword", err)
			}
		})
	}
}

func TestAuthenticateFailures(t *testing.T) {
	users := NewUserService(newTestDB(t))
	registerUser(t, users, "ana", "Ana", "Lopez")

	if _, err := users.Authenticate("ana", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := users.Authenticate("nobody", "Password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: got %v, want ErrInvalidCredentials", err)
	}
}

func TestDeactivateUnknownUser(t *testing.T) {
	users := NewUserService(newTestDB(t))

	err := users.Deactivate(uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}
