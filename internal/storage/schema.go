package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"gymgate/internal/model"
)

// EnsureSchema creates the five tables and their constraints if absent. Safe
// to invoke repeatedly; must run before any other component touches the
// store. There is no migration support beyond this.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.Execute(ctx, func(tx *gorm.DB) error {
		// Dependency order: visits references members.
		models := []interface{}{
			&model.User{},
			&model.Plan{},
			&model.Member{},
			&model.Equipment{},
			&model.Visit{},
		}
		for _, m := range models {
			if err := tx.AutoMigrate(m); err != nil {
				return fmt.Errorf("migrate %T: %w", m, err)
			}
		}
		return nil
	})
}
