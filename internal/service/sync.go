package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/meoncu/34webdergi/internal/domain"
)

// Placeholder content for candidates persisted before full extraction, as
// shown in the archive UI until an operator or a force-scrape fills them.
const (
	placeholderAuthor = "Yükleniyor..."
	placeholderBody   = "<p>İçerik çekiliyor...</p>"
	placeholderText   = "İçerik hazırlanıyor..."
	fallbackAuthor    = "Anonim"
)

type SyncService struct {
	source        Source
	articles      ArticleStore
	subscriptions SubscriptionStore
	txManager     TransactionManager
	publisher     Publisher
	decrypter     SecretDecrypter
	logger        *slog.Logger
}

func NewSyncService(
	source Source,
	articles ArticleStore,
	subscriptions SubscriptionStore,
	txManager TransactionManager,
	publisher Publisher,
	decrypter SecretDecrypter,
	logger *slog.Logger,
) *SyncService {
	return &SyncService{
		source:        source,
		articles:      articles,
		subscriptions: subscriptions,
		txManager:     txManager,
		publisher:     publisher,
		decrypter:     decrypter,
		logger:        logger.With("source", source.ID()),
	}
}

// Sync imports one publication period: resolve the issue number, discover
// its articles, optionally extract full content per candidate, and upsert
// everything keyed by source URL. Candidates are processed strictly one at
// a time to keep load on the external site down.
func (s *SyncService) Sync(ctx context.Context, req domain.SyncRequest) (*domain.SyncStats, error) {
	startTime := time.Now()

	if !req.Month.Valid() {
		return nil, fmt.Errorf("invalid month %d", int(req.Month))
	}

	s.logger.Info("starting sync",
		"year", req.Year,
		"month", req.Month.String(),
		"force_scrape", req.ForceScrape,
		"on_conflict", req.OnConflict,
	)

	sub, err := s.subscriptions.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("load subscription profile: %w", err)
	}
	if sub == nil {
		return nil, domain.ErrNoActiveSubscription
	}

	// The secret is decrypted once per run and never leaves this scope;
	// the scrape session itself rides on the operator-supplied cookie.
	if _, err := s.decrypter.Decrypt(sub.PasswordEncrypted); err != nil {
		return nil, fmt.Errorf("decrypt subscription secret: %w", err)
	}

	stats := &domain.SyncStats{}

	existing, err := s.articles.CountByPeriod(ctx, req.Year, req.Month.String())
	if err != nil {
		return nil, fmt.Errorf("count period: %w", err)
	}
	if existing > 0 {
		switch req.OnConflict {
		case domain.ConflictClear:
			cleared, err := s.articles.DeleteByPeriod(ctx, req.Year, req.Month.String())
			if err != nil {
				return nil, fmt.Errorf("clear period: %w", err)
			}
			stats.Cleared = cleared
			s.logger.Info("cleared existing period", "count", cleared)
		case domain.ConflictMerge:
			s.logger.Info("merging into existing period", "existing", existing)
		default:
			return nil, &domain.ErrDuplicatePeriod{Year: req.Year, Month: req.Month, Count: existing}
		}
	}

	issue := s.source.IssueNumber(req.Year, req.Month)
	stats.Issue = issue

	candidates, err := s.source.DiscoverIssue(ctx, issue)
	if err != nil {
		return nil, fmt.Errorf("discover issue %d: %w", issue, err)
	}

	stats.Discovered = len(candidates)
	if len(candidates) == 0 {
		s.logger.Info("no articles found for period", "issue", issue)
		stats.Duration = time.Since(startTime)
		return stats, nil
	}

	publishDate := fmt.Sprintf("%d-%02d-01", req.Year, int(req.Month))

	for _, cand := range candidates {
		article := &domain.Article{
			IssueNumber: strconv.Itoa(issue),
			Year:        req.Year,
			Month:       req.Month.String(),
			Title:       cand.Title,
			AuthorName:  placeholderAuthor,
			BodyHTML:    placeholderBody,
			BodyText:    placeholderText,
			SourceURL:   cand.SourceURL,
			Category:    domain.CategoryPublished,
			PublishDate: publishDate,
		}

		if req.ForceScrape {
			s.applyExtraction(ctx, article, req.Cookie, stats)
		}

		var created bool
		err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			_, isNew, err := s.articles.UpsertByURL(txCtx, article)
			created = isNew
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("persist %s: %w", cand.SourceURL, err)
		}

		if created {
			stats.Added++
		} else {
			stats.Updated++
		}

		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, article, created); err != nil {
				stats.Errors++
				s.logger.Warn("publish failed", "url", cand.SourceURL, "error", err)
			}
		}
	}

	if err := s.subscriptions.TouchLastSynced(ctx, sub.ID, time.Now()); err != nil {
		return stats, fmt.Errorf("update last sync time: %w", err)
	}

	stats.Duration = time.Since(startTime)

	s.logger.Info("sync completed",
		"issue", stats.Issue,
		"discovered", stats.Discovered,
		"added", stats.Added,
		"updated", stats.Updated,
		"extracted", stats.Extracted,
		"truncated", stats.Truncated,
		"errors", stats.Errors,
		"duration", stats.Duration,
	)

	return stats, nil
}

// applyExtraction pulls full content for one candidate. A failure here is
// logged and counted, never fatal: the candidate keeps its placeholder
// values and the batch moves on.
func (s *SyncService) applyExtraction(ctx context.Context, article *domain.Article, cookie string, stats *domain.SyncStats) {
	ext, err := s.source.ExtractArticle(ctx, article.SourceURL, cookie)
	if err != nil {
		stats.Errors++
		s.logger.Warn("extraction failed, keeping placeholder",
			"url", article.SourceURL,
			"error", err,
		)
		return
	}
	if ext.BodyHTML == "" {
		return
	}

	if ext.Title != "" {
		article.Title = ext.Title
	}
	article.AuthorName = ext.Author
	if article.AuthorName == "" {
		article.AuthorName = fallbackAuthor
	}
	article.Summary = ext.Summary
	article.BodyHTML = ext.BodyHTML
	article.BodyText = ext.BodyText

	stats.Extracted++
	if ext.Truncated {
		stats.Truncated++
	}
}
