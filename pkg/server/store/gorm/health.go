package gorm

import (
	"gorm.io/gorm"

	"github.com/trailpost/tourcms/pkg/server/store"
)

var _ store.HealthStore = (*HealthStore)(nil)

// HealthStore implements store.HealthStore using GORM.
type HealthStore struct {
	db *gorm.DB
}

func NewHealthStore(db *gorm.DB) *HealthStore {
	return &HealthStore{db: db}
}

// Ping verifies the underlying connection is alive.
func (s *HealthStore) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
