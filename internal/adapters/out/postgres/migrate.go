package postgres

import (
	"context"
	"fmt"

	"exoprotrack/internal/adapters/out/postgres/orderrepo"
	"exoprotrack/internal/adapters/out/postgres/packlotrepo"
	"exoprotrack/internal/adapters/out/postgres/rawlotrepo"
	"exoprotrack/internal/adapters/out/postgres/records"
	"exoprotrack/internal/adapters/out/postgres/referencerepo"
	"exoprotrack/internal/adapters/out/postgres/reservationrepo"

	"gorm.io/gorm"
)

// Models lists every table the lot workflow owns, reference data included.
func Models() []any {
	var models []any
	models = append(models, referencerepo.Models()...)
	models = append(models, rawlotrepo.Models()...)
	models = append(models, packlotrepo.Models()...)
	models = append(models, reservationrepo.Models()...)
	models = append(models, orderrepo.Models()...)
	models = append(models, records.Models()...)
	return models
}

// Migrate creates or updates the schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
