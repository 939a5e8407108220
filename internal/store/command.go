package store

import (
	"fmt"

	"github.com/ptarn/cadence/internal/model"
)

// Command is a single typed mutation applied to the store. Every state
// transition flows through exactly one of these variants, so transitions can
// be audited and tested without the store itself.
type Command interface {
	// Kind names the mutation for logging and auditing.
	Kind() string

	// apply produces the successor state. It never modifies its input; on
	// error the returned state is ignored and the store is left unchanged.
	apply(model.State) (model.State, error)
}

// AddCompany appends a company to the collection.
type AddCompany struct{ Company model.Company }

// UpdateCompany replaces the company whose id matches the payload's id.
type UpdateCompany struct{ Company model.Company }

// DeleteCompany removes a company and, atomically, every communication
// referencing it.
type DeleteCompany struct{ ID string }

// AddMethod appends a communication method.
type AddMethod struct{ Method model.CommunicationMethod }

// UpdateMethod replaces the method whose id matches the payload's id.
type UpdateMethod struct{ Method model.CommunicationMethod }

// DeleteMethod removes a method. Historical communications keep the method
// name as a string snapshot, so nothing cascades.
type DeleteMethod struct{ ID string }

// AddCommunication appends a communication. The referenced company must
// exist; a dangling reference is rejected before it can enter the store.
type AddCommunication struct{ Communication model.Communication }

// UpdateCommunication replaces the communication whose id matches.
type UpdateCommunication struct{ Communication model.Communication }

// DeleteCommunication removes a communication by id.
type DeleteCommunication struct{ ID string }

// LoadState replaces the entire state, used to restore a snapshot.
type LoadState struct{ State model.State }

func (AddCompany) Kind() string          { return "add_company" }
func (UpdateCompany) Kind() string       { return "update_company" }
func (DeleteCompany) Kind() string       { return "delete_company" }
func (AddMethod) Kind() string           { return "add_communication_method" }
func (UpdateMethod) Kind() string        { return "update_communication_method" }
func (DeleteMethod) Kind() string        { return "delete_communication_method" }
func (AddCommunication) Kind() string    { return "add_communication" }
func (UpdateCommunication) Kind() string { return "update_communication" }
func (DeleteCommunication) Kind() string { return "delete_communication" }
func (LoadState) Kind() string           { return "load_state" }

func (c AddCompany) apply(s model.State) (model.State, error) {
	if err := c.Company.Validate(); err != nil {
		return s, err
	}
	s.Companies = append(append([]model.Company(nil), s.Companies...), c.Company)
	return s, nil
}

func (c UpdateCompany) apply(s model.State) (model.State, error) {
	if err := c.Company.Validate(); err != nil {
		return s, err
	}
	companies := append([]model.Company(nil), s.Companies...)
	for i := range companies {
		if companies[i].ID == c.Company.ID {
			companies[i] = c.Company
			s.Companies = companies
			return s, nil
		}
	}
	return s, fmt.Errorf("company %s: %w", c.Company.ID, ErrNotFound)
}

func (c DeleteCompany) apply(s model.State) (model.State, error) {
	companies := make([]model.Company, 0, len(s.Companies))
	found := false
	for _, company := range s.Companies {
		if company.ID == c.ID {
			found = true
			continue
		}
		companies = append(companies, company)
	}
	if !found {
		return s, fmt.Errorf("company %s: %w", c.ID, ErrNotFound)
	}

	// Cascade: drop the company's communications in the same transition so
	// no intermediate state ever holds an orphan.
	comms := make([]model.Communication, 0, len(s.Communications))
	for _, comm := range s.Communications {
		if comm.CompanyID == c.ID {
			continue
		}
		comms = append(comms, comm)
	}

	s.Companies = companies
	s.Communications = comms
	return s, nil
}

func (c AddMethod) apply(s model.State) (model.State, error) {
	if err := c.Method.Validate(); err != nil {
		return s, err
	}
	s.CommunicationMethods = append(
		append([]model.CommunicationMethod(nil), s.CommunicationMethods...), c.Method)
	return s, nil
}

func (c UpdateMethod) apply(s model.State) (model.State, error) {
	if err := c.Method.Validate(); err != nil {
		return s, err
	}
	methods := append([]model.CommunicationMethod(nil), s.CommunicationMethods...)
	for i := range methods {
		if methods[i].ID == c.Method.ID {
			methods[i] = c.Method
			s.CommunicationMethods = methods
			return s, nil
		}
	}
	return s, fmt.Errorf("communication method %s: %w", c.Method.ID, ErrNotFound)
}

func (c DeleteMethod) apply(s model.State) (model.State, error) {
	methods := make([]model.CommunicationMethod, 0, len(s.CommunicationMethods))
	found := false
	for _, m := range s.CommunicationMethods {
		if m.ID == c.ID {
			found = true
			continue
		}
		methods = append(methods, m)
	}
	if !found {
		return s, fmt.Errorf("communication method %s: %w", c.ID, ErrNotFound)
	}
	s.CommunicationMethods = methods
	return s, nil
}

func (c AddCommunication) apply(s model.State) (model.State, error) {
	if err := c.Communication.Validate(); err != nil {
		return s, err
	}
	if s.CompanyByID(c.Communication.CompanyID) == nil {
		return s, &model.ValidationError{
			Field:  "companyId",
			Reason: fmt.Sprintf("company %s does not exist", c.Communication.CompanyID),
		}
	}
	s.Communications = append(
		append([]model.Communication(nil), s.Communications...), c.Communication)
	return s, nil
}

func (c UpdateCommunication) apply(s model.State) (model.State, error) {
	if err := c.Communication.Validate(); err != nil {
		return s, err
	}
	comms := append([]model.Communication(nil), s.Communications...)
	for i := range comms {
		if comms[i].ID == c.Communication.ID {
			comms[i] = c.Communication
			s.Communications = comms
			return s, nil
		}
	}
	return s, fmt.Errorf("communication %s: %w", c.Communication.ID, ErrNotFound)
}

func (c DeleteCommunication) apply(s model.State) (model.State, error) {
	comms := make([]model.Communication, 0, len(s.Communications))
	found := false
	for _, comm := range s.Communications {
		if comm.ID == c.ID {
			found = true
			continue
		}
		comms = append(comms, comm)
	}
	if !found {
		return s, fmt.Errorf("communication %s: %w", c.ID, ErrNotFound)
	}
	s.Communications = comms
	return s, nil
}

func (c LoadState) apply(model.State) (model.State, error) {
	return c.State, nil
}
