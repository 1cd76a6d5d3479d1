package model

import "time"

type Report struct {
	Id          uint     `gorm:"primaryKey;autoIncrement"`
	Title       *string  `gorm:"type:varchar(255)"`
	Lat         float64  `gorm:"not null"`
	Lng         float64  `gorm:"not null"`
	Description *string  `gorm:"type:text"`
	Category    string   `gorm:"type:varchar(100);not null;default:'general'"`
	Status      string   `gorm:"type:varchar(50);not null;default:'new';index"`
	Address     *string  `gorm:"type:text"`
	Rating      *float64 `gorm:""`
	Label       string   `gorm:"type:varchar(50);not null;default:'unknown';index"`

	OrgId  *uint `gorm:"index"`
	UserId uint  `gorm:"not null;index"`

	Images []Image `gorm:"constraint:OnDelete:CASCADE"`
	User   *User   `gorm:"foreignKey:UserId"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (Report) TableName() string {
	return "reports"
}

type Image struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	ReportId  uint      `gorm:"not null;index"`
	ImagePath string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Image) TableName() string {
	return "images"
}

type ReportAssignment struct {
	Id          uint       `gorm:"primaryKey;autoIncrement"`
	ReportId    uint       `gorm:"not null;index"`
	OrgId       uint       `gorm:"not null;index"`
	AssignedBy  uint       `gorm:"not null;index"`
	Status      string     `gorm:"type:varchar(50);not null;default:'assigned'"`
	AssignedAt  time.Time  `gorm:"autoCreateTime"`
	CompletedAt *time.Time `gorm:""`

	Report *Report `gorm:"foreignKey:ReportId"`
}

func (ReportAssignment) TableName() string {
	return "report_assignments"
}

type ResolvedHistory struct {
	Id         uint      `gorm:"primaryKey;autoIncrement"`
	ReportId   uint      `gorm:"not null;index"`
	ResolvedBy uint      `gorm:"not null"`
	ResolvedAt time.Time `gorm:"autoCreateTime"`
}

func (ResolvedHistory) TableName() string {
	return "resolved_history"
}
