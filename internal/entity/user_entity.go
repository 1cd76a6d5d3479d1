package entity

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type UserRole string

const (
	UserRoleReporter UserRole = "reporter"
	UserRoleCompany  UserRole = "company"
	UserRoleCity     UserRole = "city"
	UserRoleAdmin    UserRole = "admin"
)

type PayPayStatus string

const (
	PayPayStatusUnsent PayPayStatus = "unsent"
	PayPayStatusSent   PayPayStatus = "sent"
)

type User struct {
	Id           uint
	Code         string
	Email        string
	PasswordHash string
	Role         UserRole
	UserType     string
	IsAdmin      bool
	IsBlocked    bool
	OrgId        *uint

	Name       *string
	Username   *string
	Department *string
	Memo       *string

	PayPayId     *string
	PayPayStatus PayPayStatus

	// Area names the user has picked for dashboard filtering.
	SelectedCities []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) VerifyPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
