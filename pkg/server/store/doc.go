// Package store defines the storage interfaces the HTTP layer depends on.
// Concrete implementations live in the gorm subpackage.
package store
