package specification

import (
	"gorm.io/gorm"
)

// ByNameExact matches a patient name case-insensitively.
type ByNameExact struct {
	Name string
}

func (s ByNameExact) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(name) = LOWER(?)", s.Name)
}

// ByNameLike matches a partial patient name case-insensitively. Used as
// the second pass when an exact lookup found nothing.
type ByNameLike struct {
	Fragment string
}

func (s ByNameLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name ILIKE ?", "%"+s.Fragment+"%")
}
