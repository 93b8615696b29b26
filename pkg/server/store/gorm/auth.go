package gorm

import (
	"gorm.io/gorm"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server/store"
)

var _ store.AuthStore = (*AuthStore)(nil)

// AuthStore implements store.AuthStore using GORM.
type AuthStore struct {
	db *gorm.DB
}

func NewAuthStore(db *gorm.DB) *AuthStore {
	return &AuthStore{db: db}
}

func (s *AuthStore) FindAdmin(username string) (*model.AdminUser, error) {
	var user model.AdminUser
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, findErr("admin user", username, err)
	}
	return &user, nil
}

func (s *AuthStore) CreateAdmin(username, passwordHash string) (*model.AdminUser, error) {
	if username == "" {
		return nil, apperr.Validation("username is required")
	}
	var count int64
	if err := s.db.Model(&model.AdminUser{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, dbErr("admin lookup", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("username already exists")
	}

	user := model.AdminUser{Username: username, PasswordHash: passwordHash}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, dbErr("admin create", err)
	}
	return &user, nil
}
