package entity

import "time"

type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "active"
	ContractStatusSuspended ContractStatus = "suspended"
)

type Organization struct {
	Id             uint
	Name           string
	Industry       string
	ContractStatus ContractStatus
	Code           *string
	Region         *string
	IsCompany      bool

	Areas      []Area
	Categories []Category

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Area struct {
	Id   uint
	Name string
	Lat  *float64
	Lng  *float64
}

type Category struct {
	Id   uint
	Name string
}

type OrgLinkStatus string

const (
	OrgLinkStatusPending  OrgLinkStatus = "pending"
	OrgLinkStatusApproved OrgLinkStatus = "approved"
	OrgLinkStatusRejected OrgLinkStatus = "rejected"
)

// OrgLink is a directed partnership request between two organizations.
type OrgLink struct {
	Id        uint
	FromOrgId uint
	ToOrgId   uint
	Status    OrgLinkStatus

	FromOrg *Organization
	ToOrg   *Organization
}
