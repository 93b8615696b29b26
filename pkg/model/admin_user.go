package model

import "time"

// AdminUser backs the login endpoint. PasswordHash is bcrypt.
type AdminUser struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	Username     string    `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
