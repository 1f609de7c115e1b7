package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockExisting row-locks the record with the given id for the rest of tx.
// It returns gorm.ErrRecordNotFound when no such row exists.
func lockExisting(tx *gorm.DB, dst interface{}, id uint) error {
	return tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).Select("id").First(dst, id).Error
}
