package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/DFR0S7/CMR-Bot/internal/domain/clock"
)

func TestNewsService_PublishPressRelease(t *testing.T) {
	t.Parallel()

	newsRepo := &stubNewsRepository{}
	clockRepo := &stubClockRepository{lc: clock.LeagueClock{Season: 2, Week: 7}}
	service := NewNewsService(newsRepo, clockRepo)

	item, err := service.PublishPressRelease(context.Background(), "  Quarterback controversy brewing  ")
	if err != nil {
		t.Fatalf("PublishPressRelease error: %v", err)
	}
	if item.Season != 2 || item.Week != 7 {
		t.Fatalf("item not stamped with the clock: %+v", item)
	}
	if item.Text != "Quarterback controversy brewing" {
		t.Fatalf("text not trimmed: %q", item.Text)
	}
	if len(newsRepo.items) != 1 {
		t.Fatalf("expected 1 stored item, got %d", len(newsRepo.items))
	}

	if _, err := service.PublishPressRelease(context.Background(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
