package session

import (
	"testing"

	"github.com/DFR0S7/CMR-Bot/internal/domain/team"
	"github.com/stretchr/testify/assert"
)

func TestTryMarkOffered_OneShot(t *testing.T) {
	t.Parallel()

	s := NewStore()
	assert.True(t, s.TryMarkOffered("u1"))
	assert.False(t, s.TryMarkOffered("u1"), "second request must be rejected")
	assert.True(t, s.TryMarkOffered("u2"), "markers are per user")

	s.ClearOffered("u1")
	assert.True(t, s.TryMarkOffered("u1"), "reset permits exactly one further request")
	assert.False(t, s.TryMarkOffered("u1"))
}

func TestTryMarkOffered_EmptyUser(t *testing.T) {
	t.Parallel()

	s := NewStore()
	assert.False(t, s.TryMarkOffered(""))
}

func TestOffers_RoundTripAndClear(t *testing.T) {
	t.Parallel()

	s := NewStore()
	_, ok := s.Offers("u1")
	assert.False(t, ok)

	batch := []team.Team{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	s.PutOffers("u1", batch)

	got, ok := s.Offers("u1")
	assert.True(t, ok)
	assert.Equal(t, batch, got)

	// The stored list must be insulated from caller mutation.
	got[0].Name = "mutated"
	again, _ := s.Offers("u1")
	assert.Equal(t, "A", again[0].Name)

	s.ClearOffers("u1")
	_, ok = s.Offers("u1")
	assert.False(t, ok)
}
