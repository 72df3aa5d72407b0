package database

import "wellspring/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Session{},
		&models.SessionTracking{},
		&models.Follow{},
		&models.Like{},
		&models.Comment{},
	}
}
