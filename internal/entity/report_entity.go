package entity

import "time"

type ReportStatus string

const (
	ReportStatusNew        ReportStatus = "new"
	ReportStatusShared     ReportStatus = "shared"
	ReportStatusInProgress ReportStatus = "in_progress"
	ReportStatusResolved   ReportStatus = "resolved"
)

// ReportLabel tells which kind of organization a report is routed to.
type ReportLabel string

const (
	ReportLabelCity    ReportLabel = "city"
	ReportLabelCompany ReportLabel = "company"
	ReportLabelUnknown ReportLabel = "unknown"
)

type Report struct {
	Id          uint
	Title       *string
	Lat         float64
	Lng         float64
	Description *string
	Category    string
	Status      ReportStatus
	Address     *string
	Rating      *float64
	Label       ReportLabel

	OrgId  *uint
	UserId uint

	Images []Image
	User   *User

	CreatedAt time.Time
}

type Image struct {
	Id        uint
	ReportId  uint
	ImagePath string
	CreatedAt time.Time
}

type AssignmentStatus string

const (
	AssignmentStatusAssigned  AssignmentStatus = "assigned"
	AssignmentStatusAccepted  AssignmentStatus = "accepted"
	AssignmentStatusCompleted AssignmentStatus = "completed"
)

type ReportAssignment struct {
	Id          uint
	ReportId    uint
	OrgId       uint
	AssignedBy  uint
	Status      AssignmentStatus
	AssignedAt  time.Time
	CompletedAt *time.Time

	Report *Report
}

type ResolvedHistory struct {
	Id         uint
	ReportId   uint
	ResolvedBy uint
	ResolvedAt time.Time
}
