// Package store holds the single in-memory session: the current prescription
// and letterhead. It is the only owner of that state; readers receive deep
// copies and writers replace whole values.
package store

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-rxpad/pkg/letterhead"
	"github.com/goliatone/go-rxpad/pkg/prescription"
)

// Snapshot is an immutable view of the session at one version.
type Snapshot struct {
	Prescription prescription.Data   `json:"prescription"`
	Letterhead   letterhead.Template `json:"letterhead"`
	Version      uint64              `json:"version"`
}

// Listener observes successful mutations.
type Listener func(change Change)

// Change describes one mutation.
type Change struct {
	Kind     ChangeKind
	Snapshot Snapshot
}

// ChangeKind labels what a mutation touched.
type ChangeKind string

const (
	ChangePrescription ChangeKind = "prescription"
	ChangeLetterhead   ChangeKind = "letterhead"
)

// Store is safe for concurrent use. Concurrent writes to the same letterhead
// slot are last-writer-wins.
type Store struct {
	mu        sync.RWMutex
	data      prescription.Data
	head      letterhead.Template
	version   uint64
	listeners []Listener
}

// New returns a store seeded with the empty prescription and no letterhead.
func New() *Store {
	return &Store{data: prescription.Empty()}
}

// NewWith seeds a store with an initial state.
func NewWith(data prescription.Data, head letterhead.Template) *Store {
	return &Store{data: data.Normalize(), head: head}
}

// Subscribe registers a listener called after each successful mutation. The
// listener runs outside the store lock.
func (s *Store) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Prescription returns a deep copy of the current prescription.
func (s *Store) Prescription() prescription.Data {
	return s.Snapshot().Prescription
}

// Letterhead returns the current letterhead.
func (s *Store) Letterhead() letterhead.Template {
	return s.Snapshot().Letterhead
}

// Replace swaps in a new prescription.
func (s *Store) Replace(data prescription.Data) Snapshot {
	snap, _ := s.Update(func(prescription.Data) (prescription.Data, error) {
		return data, nil
	})
	return snap
}

// Update applies fn to a copy of the current prescription and stores the
// result. When fn fails the state is left untouched.
func (s *Store) Update(fn func(prescription.Data) (prescription.Data, error)) (Snapshot, error) {
	if fn == nil {
		return s.Snapshot(), fmt.Errorf("store: update func is required")
	}

	s.mu.Lock()
	next, err := fn(s.data.Clone())
	if err != nil {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, err
	}
	s.data = next.Normalize()
	s.version++
	snap := s.snapshotLocked()
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, Change{Kind: ChangePrescription, Snapshot: snap})
	return snap, nil
}

// Reset replaces the prescription with the empty value.
func (s *Store) Reset() Snapshot {
	return s.Replace(prescription.Empty())
}

// LoadSample replaces the prescription with the sample data.
func (s *Store) LoadSample() Snapshot {
	return s.Replace(prescription.Sample())
}

// ApplyLetterhead replaces every slot named by u.
func (s *Store) ApplyLetterhead(u letterhead.Update) Snapshot {
	s.mu.Lock()
	s.head = u.Apply(s.head)
	s.version++
	snap := s.snapshotLocked()
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, Change{Kind: ChangeLetterhead, Snapshot: snap})
	return snap
}

// SetLetterhead replaces both slots.
func (s *Store) SetLetterhead(t letterhead.Template) Snapshot {
	return s.ApplyLetterhead(letterhead.Replace(t))
}

// SetHeader replaces the header slot.
func (s *Store) SetHeader(html string) Snapshot {
	return s.ApplyLetterhead(letterhead.SetSlot(letterhead.SlotHeader, html))
}

// SetFooter replaces the footer slot.
func (s *Store) SetFooter(html string) Snapshot {
	return s.ApplyLetterhead(letterhead.SetSlot(letterhead.SlotFooter, html))
}

// ClearLetterhead empties both slots.
func (s *Store) ClearLetterhead() Snapshot {
	return s.SetLetterhead(letterhead.Clear())
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Prescription: s.data.Clone(),
		Letterhead:   s.head,
		Version:      s.version,
	}
}

func notify(listeners []Listener, change Change) {
	for _, fn := range listeners {
		fn(change)
	}
}
