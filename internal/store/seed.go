package store

import (
	"github.com/google/uuid"

	"github.com/ptarn/cadence/internal/model"
)

// Seed returns the built-in starter dataset, used on first run and as the
// fallback when the persisted snapshot cannot be read. Communication dates
// are placed relative to today so the dashboard shows a live mix of overdue,
// due, and on-track companies out of the box.
func Seed(today model.Date) model.State {
	companies := []model.Company{
		{ID: uuid.New().String(), Name: "Tech Innovators Inc.", CommunicationPeriodicity: 30, Email: "contact@techinnovators.com", Phone: "+1-555-0123"},
		{ID: uuid.New().String(), Name: "Global Solutions Ltd.", CommunicationPeriodicity: 15, Email: "info@globalsolutions.com", Phone: "+1-555-0124"},
		{ID: uuid.New().String(), Name: "Digital Dynamics", CommunicationPeriodicity: 45, Email: "hello@digitaldynamics.com", Phone: "+1-555-0125"},
		{ID: uuid.New().String(), Name: "Future Systems", CommunicationPeriodicity: 20, Email: "contact@futuresystems.com", Phone: "+1-555-0126"},
		{ID: uuid.New().String(), Name: "Smart Analytics Co.", CommunicationPeriodicity: 25, Email: "info@smartanalytics.com", Phone: "+1-555-0127"},
	}

	methods := []model.CommunicationMethod{
		{ID: uuid.New().String(), Name: "Email", Description: "Electronic mail communication", Sequence: 1, Mandatory: true},
		{ID: uuid.New().String(), Name: "Phone Call", Description: "Voice call communication", Sequence: 2, Mandatory: false},
		{ID: uuid.New().String(), Name: "Video Conference", Description: "Virtual face-to-face meeting", Sequence: 3, Mandatory: false},
		{ID: uuid.New().String(), Name: "In-Person Meeting", Description: "Physical face-to-face meeting", Sequence: 4, Mandatory: false},
	}

	comm := func(company int, daysAgo int, method, notes string) model.Communication {
		return model.Communication{
			ID:        uuid.New().String(),
			CompanyID: companies[company].ID,
			Date:      today.AddDays(-daysAgo),
			Type:      method,
			Notes:     notes,
			Status:    model.CommunicationCompleted,
		}
	}

	communications := []model.Communication{
		comm(0, 40, "Email", "Discussed Q4 project timeline and deliverables"),
		comm(0, 10, "Video Conference", "Project status update and resource allocation review"),
		comm(1, 20, "Phone Call", "Contract renewal discussion"),
		comm(1, 5, "Email", "Follow-up on contract terms and pricing"),
		comm(2, 60, "In-Person Meeting", "Initial project kickoff meeting"),
		comm(2, 15, "Video Conference", "Project milestone review"),
		comm(3, 25, "Email", "Product feature requirements discussion"),
		comm(3, 3, "Phone Call", "Urgent bug fix coordination"),
		comm(4, 30, "Video Conference", "Quarterly business review"),
		comm(4, 1, "Email", "Follow-up on action items from QBR"),
	}

	return model.State{
		Companies:            companies,
		CommunicationMethods: methods,
		Communications:       communications,
		Settings:             model.DefaultSettings(),
	}
}
