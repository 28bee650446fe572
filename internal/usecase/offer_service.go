package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/DFR0S7/CMR-Bot/internal/domain/team"
	"github.com/DFR0S7/CMR-Bot/internal/platform/session"
)

// OfferService runs the job-offer flow: one batch of random open teams per
// user, claimed later by a numbered DM reply.
type OfferService struct {
	teamRepo team.Repository
	sessions *session.Store

	// openTierStars selects which prestige tier counts as an open job.
	openTierStars float64

	randIntn func(n int) int
}

func NewOfferService(teamRepo team.Repository, sessions *session.Store, openTierStars float64) *OfferService {
	return &OfferService{
		teamRepo:      teamRepo,
		sessions:      sessions,
		openTierStars: openTierStars,
		randIntn:      rand.Intn,
	}
}

// Offer draws up to count random open teams for the user and stores the batch
// for a later claim. Each user gets one batch until an admin resets them.
func (s *OfferService) Offer(ctx context.Context, userID string, count int) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfferService.Offer")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: offer count must be positive", ErrInvalidInput)
	}

	// Marker first: a user who already consumed their batch is rejected
	// before any datastore round trip.
	if !s.sessions.TryMarkOffered(userID) {
		return nil, fmt.Errorf("%w: job offers already sent", ErrConflict)
	}

	current, exists, err := s.teamRepo.GetByOccupant(ctx, userID)
	if err != nil {
		s.sessions.RollbackOffered(userID)
		return nil, fmt.Errorf("get occupied team: %w", err)
	}
	if exists {
		s.sessions.RollbackOffered(userID)
		return nil, fmt.Errorf("%w: already coaching %s", ErrConflict, current.Name)
	}

	open, err := s.teamRepo.ListOpen(ctx, s.openTierStars)
	if err != nil {
		s.sessions.RollbackOffered(userID)
		return nil, fmt.Errorf("list open teams: %w", err)
	}
	if len(open) == 0 {
		s.sessions.RollbackOffered(userID)
		return nil, fmt.Errorf("%w: no open teams", ErrNotFound)
	}

	batch := s.pickRandom(open, count)
	s.sessions.PutOffers(userID, batch)

	return batch, nil
}

// Claim resolves a numbered reply against the user's pending batch and claims
// the chosen team. team.ErrTaken surfaces unwrapped so the caller can re-offer.
func (s *OfferService) Claim(ctx context.Context, userID, userName string, choice int) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfferService.Claim")
	defer span.End()

	offers, ok := s.sessions.Offers(userID)
	if !ok {
		return team.Team{}, fmt.Errorf("%w: no pending offers", ErrNotFound)
	}
	if choice < 1 || choice > len(offers) {
		return team.Team{}, fmt.Errorf("%w: choice %d is out of range 1..%d", ErrInvalidInput, choice, len(offers))
	}

	chosen := offers[choice-1]
	if err := s.teamRepo.Claim(ctx, chosen.ID, userID, userName); err != nil {
		if errors.Is(err, team.ErrTaken) {
			return chosen, team.ErrTaken
		}
		return team.Team{}, fmt.Errorf("claim team id=%d: %w", chosen.ID, err)
	}

	s.sessions.ClearOffers(userID)

	chosen.TakenBy = userID
	chosen.TakenByName = userName
	return chosen, nil
}

// HasPending reports whether the user has an unclaimed offer batch. The DM
// handler uses this to tell claim replies apart from unrelated messages.
func (s *OfferService) HasPending(userID string) bool {
	_, ok := s.sessions.Offers(userID)
	return ok
}

// CancelOffers throws away an undelivered batch and lets the user request a
// fresh one, for when the offer DM could not be sent.
func (s *OfferService) CancelOffers(userID string) {
	s.sessions.ClearOffers(userID)
	s.sessions.RollbackOffered(userID)
}

// pickRandom shuffles only the prefix it returns.
func (s *OfferService) pickRandom(teams []team.Team, count int) []team.Team {
	picked := append([]team.Team(nil), teams...)
	if count > len(picked) {
		count = len(picked)
	}
	for i := 0; i < count; i++ {
		j := i + s.randIntn(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:count]
}
