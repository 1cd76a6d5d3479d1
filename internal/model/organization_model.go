package model

import "time"

type Organization struct {
	Id             uint    `gorm:"primaryKey;autoIncrement"`
	Name           string  `gorm:"type:varchar(255);not null"`
	Industry       string  `gorm:"type:varchar(100);not null;default:'general'"`
	ContractStatus string  `gorm:"type:varchar(50);not null;default:'active'"`
	Code           *string `gorm:"type:varchar(32);uniqueIndex"`
	Region         *string `gorm:"type:varchar(255)"`
	IsCompany      bool    `gorm:"default:true"`

	Areas      []Area     `gorm:"many2many:organization_areas"`
	Categories []Category `gorm:"many2many:organization_categories"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Organization) TableName() string {
	return "organizations"
}

type Area struct {
	Id   uint     `gorm:"primaryKey;autoIncrement"`
	Name string   `gorm:"type:varchar(255);uniqueIndex;not null"`
	Lat  *float64 `gorm:""`
	Lng  *float64 `gorm:""`
}

func (Area) TableName() string {
	return "areas"
}

type Category struct {
	Id   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(255);uniqueIndex;not null"`
}

func (Category) TableName() string {
	return "categories"
}

type OrgLink struct {
	Id        uint   `gorm:"primaryKey;autoIncrement"`
	FromOrgId uint   `gorm:"not null;index"`
	ToOrgId   uint   `gorm:"not null;index"`
	Status    string `gorm:"type:varchar(50);not null;default:'pending'"`

	FromOrg *Organization `gorm:"foreignKey:FromOrgId"`
	ToOrg   *Organization `gorm:"foreignKey:ToOrgId"`
}

func (OrgLink) TableName() string {
	return "org_links"
}
