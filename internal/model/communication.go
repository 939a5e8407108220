package model

// Communication status labels used by the application surfaces. The field
// itself is free-form; these are the values the CLI and dashboard write.
const (
	CommunicationCompleted = "completed"
	CommunicationScheduled = "scheduled"
)

// CommunicationMethod is a named channel label (e.g. email, call) selectable
// when logging a communication. Communications snapshot the method name as a
// string rather than referencing it, so deleting a method never invalidates
// history.
type CommunicationMethod struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Sequence    int    `json:"sequence" db:"sequence"`
	Mandatory   bool   `json:"mandatory" db:"mandatory"`
}

// Validate checks the fields a method must have before it reaches the store.
func (m CommunicationMethod) Validate() error {
	if m.Name == "" {
		return &ValidationError{Field: "name", Reason: "method name is required"}
	}
	return nil
}

// Communication is a logged (or scheduled) contact event tied to a company.
// Date is the event date, not necessarily the time of logging, and anchors
// all due-date math. ResponseDate, when present, marks resolution and feeds
// response-time statistics; its absence means "no response tracked".
type Communication struct {
	ID           string `json:"id" db:"id"`
	CompanyID    string `json:"companyId" db:"company_id"`
	Date         Date   `json:"date" db:"date"`
	Type         string `json:"type" db:"type"`
	Notes        string `json:"notes" db:"notes"`
	Status       string `json:"status,omitempty" db:"status"`
	ResponseDate *Date  `json:"responseDate,omitempty" db:"response_date"`
}

// Validate checks the fields a communication must have before it reaches
// the store. Whether the company id resolves is the store's concern.
func (c Communication) Validate() error {
	if c.CompanyID == "" {
		return &ValidationError{Field: "companyId", Reason: "company is required"}
	}
	if c.Type == "" {
		return &ValidationError{Field: "type", Reason: "communication type is required"}
	}
	if c.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "communication date is required"}
	}
	return nil
}
