package specification

import (
	"time"

	"gorm.io/gorm"
)

// ByReportFilters covers the dashboard list filters: category, status and
// a created_at window. Zero values are skipped.
type ByReportFilters struct {
	Category string
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
}

func (s ByReportFilters) Apply(db *gorm.DB) *gorm.DB {
	if s.Category != "" {
		db = db.Where("category = ?", s.Category)
	}
	if s.Status != "" {
		db = db.Where("status = ?", s.Status)
	}
	if s.DateFrom != nil {
		db = db.Where("created_at >= ?", *s.DateFrom)
	}
	if s.DateTo != nil {
		db = db.Where("created_at <= ?", *s.DateTo)
	}
	return db
}

// SearchText matches title, description or address, case-insensitively.
type SearchText struct {
	Query string
}

func (s SearchText) Apply(db *gorm.DB) *gorm.DB {
	if s.Query == "" {
		return db
	}
	like := "%" + s.Query + "%"
	return db.Where("title ILIKE ? OR description ILIKE ? OR address ILIKE ?", like, like, like)
}

// AddressInAnyArea keeps reports whose address contains at least one of the
// given area keywords. An empty list is a no-op.
type AddressInAnyArea struct {
	Keywords []string
}

func (s AddressInAnyArea) Apply(db *gorm.DB) *gorm.DB {
	keywords := make([]string, 0, len(s.Keywords))
	for _, kw := range s.Keywords {
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return db
	}
	db = db.Where("address IS NOT NULL")
	cond := db.Session(&gorm.Session{NewDB: true}).Where("address ILIKE ?", "%"+keywords[0]+"%")
	for _, kw := range keywords[1:] {
		cond = cond.Or("address ILIKE ?", "%"+kw+"%")
	}
	return db.Where(cond)
}

// AddressContains matches a single area keyword.
type AddressContains struct {
	Keyword string
}

func (s AddressContains) Apply(db *gorm.DB) *gorm.DB {
	if s.Keyword == "" {
		return db
	}
	return db.Where("address ILIKE ?", "%"+s.Keyword+"%")
}
