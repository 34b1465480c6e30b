package service

import (
	"context"
	"fmt"

	"github.com/meoncu/34webdergi/internal/domain"
)

// Rescrape fetches and re-extracts one stored article's source page,
// returning an updated in-memory copy plus the truncation flag. Nothing
// is persisted here; the caller saves explicitly with SaveArticle once
// the operator accepts the result.
func (s *SyncService) Rescrape(ctx context.Context, id int64, cookie string) (*domain.Article, bool, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("load article %d: %w", id, err)
	}

	ext, err := s.source.ExtractArticle(ctx, article.SourceURL, cookie)
	if err != nil {
		return nil, false, fmt.Errorf("rescrape %s: %w", article.SourceURL, err)
	}

	updated := *article
	if ext.Title != "" {
		updated.Title = ext.Title
	}
	if ext.Author != "" {
		updated.AuthorName = ext.Author
	}
	if ext.Summary != "" {
		updated.Summary = ext.Summary
	}
	if ext.BodyHTML != "" {
		updated.BodyHTML = ext.BodyHTML
		updated.BodyText = ext.BodyText
	}

	return &updated, ext.Truncated, nil
}

// SaveArticle persists an edited or re-scraped record.
func (s *SyncService) SaveArticle(ctx context.Context, article *domain.Article) error {
	if err := s.articles.Update(ctx, article); err != nil {
		return fmt.Errorf("save article %d: %w", article.ID, err)
	}
	return nil
}

// DeletePeriod removes every record of one publication period and returns
// how many went. Irreversible; there is no soft delete.
func (s *SyncService) DeletePeriod(ctx context.Context, year int, month domain.Month) (int64, error) {
	count, err := s.articles.DeleteByPeriod(ctx, year, month.String())
	if err != nil {
		return 0, fmt.Errorf("delete period %d %s: %w", year, month, err)
	}
	s.logger.Info("deleted period", "year", year, "month", month.String(), "count", count)
	return count, nil
}

// DeleteArticle removes a single record.
func (s *SyncService) DeleteArticle(ctx context.Context, id int64) error {
	return s.articles.Delete(ctx, id)
}

// ListPeriod returns a period's stored records, newest first.
func (s *SyncService) ListPeriod(ctx context.Context, year int, month domain.Month) ([]domain.Article, error) {
	return s.articles.ListByPeriod(ctx, year, month.String())
}

// PeriodStats returns stored volume per period for the admin dashboard.
func (s *SyncService) PeriodStats(ctx context.Context) ([]domain.PeriodStat, error) {
	return s.articles.Stats(ctx)
}
