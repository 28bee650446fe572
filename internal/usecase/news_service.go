package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/DFR0S7/CMR-Bot/internal/domain/clock"
	"github.com/DFR0S7/CMR-Bot/internal/domain/news"
)

type NewsService struct {
	newsRepo  news.Repository
	clockRepo clock.Repository
}

func NewNewsService(newsRepo news.Repository, clockRepo clock.Repository) *NewsService {
	return &NewsService{
		newsRepo:  newsRepo,
		clockRepo: clockRepo,
	}
}

// PublishPressRelease stores a press release against the current week so the
// next advance picks it up in the weekly summary.
func (s *NewsService) PublishPressRelease(ctx context.Context, text string) (news.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.PublishPressRelease")
	defer span.End()

	text = strings.TrimSpace(text)
	if text == "" {
		return news.Item{}, fmt.Errorf("%w: press release text is required", ErrInvalidInput)
	}

	lc, err := s.clockRepo.Get(ctx)
	if err != nil {
		return news.Item{}, fmt.Errorf("get league clock: %w", err)
	}

	item := news.Item{
		Season: lc.Season,
		Week:   lc.Week,
		Text:   text,
	}
	if err := s.newsRepo.Insert(ctx, item); err != nil {
		return news.Item{}, fmt.Errorf("insert press release: %w", err)
	}

	return item, nil
}
