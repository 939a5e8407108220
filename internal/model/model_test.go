package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyValidate(t *testing.T) {
	ok := Company{Name: "Acme Corp", CommunicationPeriodicity: 30}
	assert.NoError(t, ok.Validate())

	var verr *ValidationError
	err := Company{CommunicationPeriodicity: 30}.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	err = Company{Name: "Acme Corp", CommunicationPeriodicity: 0}.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "communicationPeriodicity", verr.Field)
}

func TestCommunicationValidate(t *testing.T) {
	ok := Communication{CompanyID: "1", Type: "Email", Date: NewDate(2025, time.June, 1)}
	assert.NoError(t, ok.Validate())

	assert.Error(t, Communication{Type: "Email", Date: NewDate(2025, time.June, 1)}.Validate())
	assert.Error(t, Communication{CompanyID: "1", Date: NewDate(2025, time.June, 1)}.Validate())
	assert.Error(t, Communication{CompanyID: "1", Type: "Email"}.Validate())
}

func TestStateClone_IsIndependent(t *testing.T) {
	s := State{
		Companies: []Company{{ID: "1", Name: "Acme Corp", CommunicationPeriodicity: 30}},
		Communications: []Communication{
			{ID: "a", CompanyID: "1", Date: NewDate(2025, time.June, 1), Type: "Email"},
		},
		Settings: DefaultSettings(),
	}

	clone := s.Clone()
	clone.Companies[0].Name = "Changed"
	clone.Communications = append(clone.Communications, Communication{ID: "b"})

	assert.Equal(t, "Acme Corp", s.Companies[0].Name)
	assert.Len(t, s.Communications, 1)
}

func TestStateLookups(t *testing.T) {
	s := State{
		Companies:            []Company{{ID: "1", Name: "Acme Corp"}},
		CommunicationMethods: []CommunicationMethod{{ID: "m1", Name: "Email"}},
		Communications:       []Communication{{ID: "a", CompanyID: "1"}},
	}

	require.NotNil(t, s.CompanyByID("1"))
	assert.Nil(t, s.CompanyByID("missing"))
	require.NotNil(t, s.MethodByID("m1"))
	assert.Nil(t, s.MethodByID("missing"))
	require.NotNil(t, s.CommunicationByID("a"))
	assert.Nil(t, s.CommunicationByID("missing"))
}
