package records

import (
	"errors"
	"fmt"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fail wraps a driver error as a StoreFailureError. A missing row becomes
// ObjectNotFoundError for entity and id.
func Fail(op, entity string, id any, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(entity, id)
	}
	return errs.NewStoreFailureError(op, err)
}

// UpdateVersioned writes values to the row of model with the given id only
// if its version still equals version, and bumps the version by one. A
// missing row is reported as NotFound, a stale version as VersionIsInvalid.
func UpdateVersioned(db *gorm.DB, model any, entity string, id uuid.UUID, version int, values map[string]any) error {
	values["version"] = version + 1
	result := db.Model(model).Where("id = ? AND version = ?", id, version).Updates(values)
	if result.Error != nil {
		return errs.NewStoreFailureError("update "+entity, result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var stored struct{ Version int }
	lookup := db.Model(model).Select("version").Where("id = ?", id).Limit(1).Scan(&stored)
	if lookup.Error != nil {
		return errs.NewStoreFailureError("update "+entity, lookup.Error)
	}
	if lookup.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(entity, id.String())
	}
	return errs.NewVersionIsInvalidError(entity,
		fmt.Errorf("%s %s was loaded at version %d, stored version is %d", entity, id, version, stored.Version))
}

// UUIDPtr converts an optional identity to its column value.
func UUIDPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

// KernelUUID converts a column value to an identity.
func KernelUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

// KernelUUIDPtr converts an optional column value to an identity.
func KernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &k, nil
}
