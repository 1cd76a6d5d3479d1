package model

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	Id        uint    `gorm:"primaryKey;autoIncrement"`
	Code      string  `gorm:"type:varchar(16);uniqueIndex;not null"`
	Email     string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string  `gorm:"type:varchar(255);not null"`
	Role      string  `gorm:"type:varchar(50);not null;default:'reporter'"`
	UserType  *string `gorm:"type:varchar(50)"`
	IsAdmin   bool    `gorm:"default:false"`
	IsBlocked bool    `gorm:"default:false"`
	OrgId     *uint   `gorm:"index"`

	Name       *string `gorm:"type:varchar(255)"`
	Username   *string `gorm:"type:varchar(255)"`
	Department *string `gorm:"type:varchar(255)"`
	Memo       *string `gorm:"type:text"`

	PayPayId     *string `gorm:"column:paypay_id;type:varchar(255)"`
	PayPayStatus string  `gorm:"column:paypay_status;type:varchar(50);not null;default:'unsent'"`

	SelectedCities datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
