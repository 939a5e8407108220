package model

// Company is an organizational contact with a periodic communication
// obligation. CommunicationPeriodicity is the number of calendar days after
// a communication that the next one becomes due.
type Company struct {
	ID                       string `json:"id" db:"id"`
	Name                     string `json:"name" db:"name"`
	CommunicationPeriodicity int    `json:"communicationPeriodicity" db:"communication_periodicity"`
	Email                    string `json:"email,omitempty" db:"email"`
	Phone                    string `json:"phone,omitempty" db:"phone"`
}

// Validate checks the fields a company must have before it reaches the store.
func (c Company) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Reason: "company name is required"}
	}
	if c.CommunicationPeriodicity < 1 {
		return &ValidationError{
			Field:  "communicationPeriodicity",
			Reason: "periodicity must be a positive number of days",
		}
	}
	return nil
}
