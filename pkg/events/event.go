package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "REPORT_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes.
const (
	TypeUserRegistered    = "USER_REGISTERED"
	TypeReportCreated     = "REPORT_CREATED"
	TypeReportAssigned    = "REPORT_ASSIGNED"
	TypeReportResolved    = "REPORT_RESOLVED"
	TypeChatMessagePosted = "CHAT_MESSAGE_POSTED"
)

func NewUserRegistered(userId uint, role string) Event {
	return BaseEvent{
		Type: TypeUserRegistered,
		Data: map[string]interface{}{
			"user_id": userId,
			"role":    role,
		},
		OccurredAt: time.Now(),
	}
}

func NewReportCreated(reportId, userId uint, label string) Event {
	return BaseEvent{
		Type: TypeReportCreated,
		Data: map[string]interface{}{
			"report_id": reportId,
			"user_id":   userId,
			"label":     label,
		},
		OccurredAt: time.Now(),
	}
}

func NewReportAssigned(reportId, orgId uint) Event {
	return BaseEvent{
		Type: TypeReportAssigned,
		Data: map[string]interface{}{
			"report_id": reportId,
			"org_id":    orgId,
		},
		OccurredAt: time.Now(),
	}
}

func NewReportResolved(reportId, orgId uint) Event {
	return BaseEvent{
		Type: TypeReportResolved,
		Data: map[string]interface{}{
			"report_id": reportId,
			"org_id":    orgId,
		},
		OccurredAt: time.Now(),
	}
}

func NewChatMessagePosted(chatId, reportId, userId uint) Event {
	return BaseEvent{
		Type: TypeChatMessagePosted,
		Data: map[string]interface{}{
			"chat_id":   chatId,
			"report_id": reportId,
			"user_id":   userId,
		},
		OccurredAt: time.Now(),
	}
}
