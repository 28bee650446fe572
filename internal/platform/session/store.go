package session

import (
	"sync"

	"github.com/DFR0S7/CMR-Bot/internal/domain/team"
)

// Store holds the per-user assignment-flow state: pending job-offer lists and
// the one-shot markers that stop a user from requesting a second batch. The
// state is process-lifetime only; a restart drops every pending offer and
// every marker, which is the documented behavior.
type Store struct {
	mu      sync.Mutex
	offers  map[string][]team.Team
	granted map[string]bool
}

func NewStore() *Store {
	return &Store{
		offers:  make(map[string][]team.Team),
		granted: make(map[string]bool),
	}
}

// TryMarkOffered sets the one-shot marker for the user. It returns false,
// without side effects, when the marker was already set.
func (s *Store) TryMarkOffered(userID string) bool {
	if userID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.granted[userID] {
		return false
	}
	s.granted[userID] = true
	return true
}

// RollbackOffered clears the marker again, used when the offer batch could
// not be produced or delivered after the marker was claimed.
func (s *Store) RollbackOffered(userID string) {
	s.mu.Lock()
	delete(s.granted, userID)
	s.mu.Unlock()
}

// ClearOffered resets the marker as part of an administrative team reset,
// permitting one further offer cycle.
func (s *Store) ClearOffered(userID string) {
	s.RollbackOffered(userID)
}

// PutOffers stores the ordered offer list for the user, replacing any
// previous one.
func (s *Store) PutOffers(userID string, offers []team.Team) {
	if userID == "" || len(offers) == 0 {
		return
	}

	s.mu.Lock()
	s.offers[userID] = append([]team.Team(nil), offers...)
	s.mu.Unlock()
}

// Offers returns a copy of the user's pending offer list.
func (s *Store) Offers(userID string) ([]team.Team, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	offers, ok := s.offers[userID]
	if !ok {
		return nil, false
	}
	return append([]team.Team(nil), offers...), true
}

// ClearOffers drops the user's pending offer list once a claim succeeds.
func (s *Store) ClearOffers(userID string) {
	s.mu.Lock()
	delete(s.offers, userID)
	s.mu.Unlock()
}
