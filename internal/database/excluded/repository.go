// Package excluded provides database operations for the learned-words set.
//
// This package implements the ExcludedStore interface defined in internal/http/stores.go.
//
// # Usage
//
//	repo := excluded.NewRepository(db)
//	created, err := repo.AddExcluded(42)
package excluded

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/wortschatz/internal/entities"
)

// Repository handles all excluded-set database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new excluded-set repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListExcluded returns the indexes of all learned records in ascending order.
func (r *Repository) ListExcluded() ([]int, error) {
	indexes := make([]int, 0)
	err := r.db.Model(&entities.ExcludedWord{}).
		Order("record_index ASC").
		Pluck("record_index", &indexes).Error
	return indexes, err
}

// IsExcluded reports whether the record index is marked as learned.
func (r *Repository) IsExcluded(index int) (bool, error) {
	var existing entities.ExcludedWord
	err := r.db.Where("record_index = ?", index).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AddExcluded marks a record as learned. Adding an index twice is not an
// error; created reports whether a new row was written.
func (r *Repository) AddExcluded(index int) (created bool, err error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entities.ExcludedWord{Index: index})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveExcluded unmarks a record. removed reports whether a row existed.
func (r *Repository) RemoveExcluded(index int) (removed bool, err error) {
	result := r.db.Where("record_index = ?", index).Delete(&entities.ExcludedWord{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ClearExcluded removes every learned mark and returns how many were removed.
func (r *Repository) ClearExcluded() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&entities.ExcludedWord{})
	return result.RowsAffected, result.Error
}
