// Package store holds the record store: the single source of truth for
// companies, communication methods, and communications. All mutations flow
// through typed commands applied by a pure reducer; each successful command
// swaps in a fresh immutable snapshot and notifies listeners.
package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/ptarn/cadence/internal/model"
)

// ErrNotFound is returned when an update or delete targets an id that is
// not present in the store. The store is left unchanged.
var ErrNotFound = errors.New("not found")

// Listener receives the new snapshot after every successful mutation.
// Listeners run synchronously on the mutating call; the persistence bridge
// registers one to mirror the store after each change.
type Listener func(model.State)

// Store owns the application state. Reads return the current snapshot;
// mutations go through Dispatch and never expose a partially updated state.
type Store struct {
	mu        sync.RWMutex
	state     model.State
	listeners []Listener
}

// New creates a store seeded with the given initial state.
func New(initial model.State) *Store {
	return &Store{state: initial}
}

// State returns the current snapshot. Snapshots are never mutated after
// publication, so callers may read them without further locking.
func (s *Store) State() model.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers a listener invoked after every successful mutation.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Dispatch applies a command. On error the state is unchanged and no
// listener fires.
func (s *Store) Dispatch(cmd Command) error {
	s.mu.Lock()
	next, err := cmd.apply(s.state)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return nil
}

// AddCompany validates and stores a company, assigning an id when the
// payload has none. Returns the stored record.
func (s *Store) AddCompany(c model.Company) (model.Company, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if err := s.Dispatch(AddCompany{Company: c}); err != nil {
		return model.Company{}, err
	}
	return c, nil
}

// UpdateCompany replaces the company matching the payload's id.
func (s *Store) UpdateCompany(c model.Company) error {
	return s.Dispatch(UpdateCompany{Company: c})
}

// DeleteCompany removes a company and all communications referencing it.
func (s *Store) DeleteCompany(id string) error {
	return s.Dispatch(DeleteCompany{ID: id})
}

// AddMethod validates and stores a communication method.
func (s *Store) AddMethod(m model.CommunicationMethod) (model.CommunicationMethod, error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if err := s.Dispatch(AddMethod{Method: m}); err != nil {
		return model.CommunicationMethod{}, err
	}
	return m, nil
}

// UpdateMethod replaces the method matching the payload's id.
func (s *Store) UpdateMethod(m model.CommunicationMethod) error {
	return s.Dispatch(UpdateMethod{Method: m})
}

// DeleteMethod removes a communication method by id.
func (s *Store) DeleteMethod(id string) error {
	return s.Dispatch(DeleteMethod{ID: id})
}

// AddCommunication validates and stores a communication.
func (s *Store) AddCommunication(c model.Communication) (model.Communication, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if err := s.Dispatch(AddCommunication{Communication: c}); err != nil {
		return model.Communication{}, err
	}
	return c, nil
}

// UpdateCommunication replaces the communication matching the payload's id.
func (s *Store) UpdateCommunication(c model.Communication) error {
	return s.Dispatch(UpdateCommunication{Communication: c})
}

// DeleteCommunication removes a communication by id.
func (s *Store) DeleteCommunication(id string) error {
	return s.Dispatch(DeleteCommunication{ID: id})
}

// Load replaces the whole state, used when restoring a snapshot or import.
func (s *Store) Load(state model.State) error {
	return s.Dispatch(LoadState{State: state})
}
