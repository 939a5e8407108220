package model

// State is the full application snapshot: the three entity collections plus
// user settings. The record store owns the only authoritative State; every
// mutation produces a fresh value, so a State handed out to a reader is
// never modified afterwards. Slice order is insertion order and is the
// default secondary sort everywhere.
type State struct {
	Companies            []Company             `json:"companies"`
	CommunicationMethods []CommunicationMethod `json:"communicationMethods"`
	Communications       []Communication       `json:"communications"`
	Settings             Settings              `json:"settings"`
}

// CompanyByID returns the company with the given id, or nil.
func (s State) CompanyByID(id string) *Company {
	for i := range s.Companies {
		if s.Companies[i].ID == id {
			return &s.Companies[i]
		}
	}
	return nil
}

// MethodByID returns the communication method with the given id, or nil.
func (s State) MethodByID(id string) *CommunicationMethod {
	for i := range s.CommunicationMethods {
		if s.CommunicationMethods[i].ID == id {
			return &s.CommunicationMethods[i]
		}
	}
	return nil
}

// CommunicationByID returns the communication with the given id, or nil.
func (s State) CommunicationByID(id string) *Communication {
	for i := range s.Communications {
		if s.Communications[i].ID == id {
			return &s.Communications[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the state. Callers that hand a State across
// a goroutine boundary clone first so slice backing arrays are not shared.
func (s State) Clone() State {
	out := State{Settings: s.Settings}
	out.Companies = append([]Company(nil), s.Companies...)
	out.CommunicationMethods = append([]CommunicationMethod(nil), s.CommunicationMethods...)
	out.Communications = make([]Communication, len(s.Communications))
	for i, c := range s.Communications {
		if c.ResponseDate != nil {
			rd := *c.ResponseDate
			c.ResponseDate = &rd
		}
		out.Communications[i] = c
	}
	out.Settings.WorkingDays = append([]string(nil), s.Settings.WorkingDays...)
	return out
}
