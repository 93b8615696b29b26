package store

import "github.com/trailpost/tourcms/pkg/model"

// AuthStore abstracts admin user lookup for the login endpoint.
type AuthStore interface {
	FindAdmin(username string) (*model.AdminUser, error)
	CreateAdmin(username, passwordHash string) (*model.AdminUser, error)
}
