package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dverdugo/message-app/internal/models"
)

func (d *Database) CreateUser(user *models.User) error {
	return d.db.Create(user).Error
}

// GetUser returns (nil, nil) when no row matches: an empty result set is
// not an error at this layer.
func (d *Database) GetUser(id string) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByUsername(username string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (d *Database) ListUsers() ([]models.User, error) {
	var users []models.User
	err := d.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// DeactivateUser flips the activation flag; users are never hard-deleted.
func (d *Database) DeactivateUser(id string) error {
	return d.db.Model(&models.User{}).Where("id = ?", id).Update("is_active", false).Error
}
