package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dverdugo/message-app/internal/database"
	"github.com/dverdugo/message-app/internal/models"
)

func newTestDB(t *testing.T) *database.Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	d := database.New(db)
	if err := d.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return d
}

func registerUser(t *testing.T, users *UserService, username, first, last string) *models.User {
	t.Helper()

	user, err := users.Register(username, "Password1", first, last)
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}
