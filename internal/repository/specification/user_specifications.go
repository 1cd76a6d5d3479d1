package specification

import "gorm.io/gorm"

// SearchUsers matches name, email or code, case-insensitively.
type SearchUsers struct {
	Query string
}

func (s SearchUsers) Apply(db *gorm.DB) *gorm.DB {
	if s.Query == "" {
		return db
	}
	like := "%" + s.Query + "%"
	return db.Where("name ILIKE ? OR email ILIKE ? OR code ILIKE ?", like, like, like)
}
