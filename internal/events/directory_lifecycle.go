package events

import "time"

const DirectoryLifecycleTopic = "directory.lifecycle.v1"

const (
	TenantCreated     = "tenant_created"
	EmployeeOnboarded = "employee_onboarded"
	EmployeeDeleted   = "employee_deleted"
	CompanyDeleted    = "company_deleted"
)

const (
	AggregateCompany  = "company"
	AggregateEmployee = "employee"
)

type TenantCreatedEvent struct {
	EventType     string    `json:"event_type"`
	CompanyID     string    `json:"company_id"`
	CompanyName   string    `json:"company_name"`
	AdminID       string    `json:"admin_id"`
	AdminEmail    string    `json:"admin_email"`
	EmployeeLimit int       `json:"employee_limit"`
	CreatedBy     string    `json:"created_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type EmployeeOnboardedEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	Email      string    `json:"email"`
	OnboardBy  string    `json:"onboarded_by"`
	SeatCharge bool      `json:"seat_charged"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EmployeeDeletedEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	DeletedBy  string    `json:"deleted_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

type CompanyDeletedEvent struct {
	EventType  string    `json:"event_type"`
	CompanyID  string    `json:"company_id"`
	AdminID    string    `json:"admin_id,omitempty"`
	DeletedBy  string    `json:"deleted_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Envelope is the part every lifecycle payload shares.
type Envelope struct {
	EventType  string    `json:"event_type"`
	CompanyID  string    `json:"company_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
