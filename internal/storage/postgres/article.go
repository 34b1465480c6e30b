package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/meoncu/34webdergi/internal/domain"
)

type ArticleStore struct {
	db *sqlx.DB
}

func NewArticleStore(db *sqlx.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// UpsertByURL inserts or updates by source_url and reports whether a new
// row was created. There is no unique constraint on source_url; the
// select-then-write runs under the caller's transaction to stay safe
// across concurrent re-runs.
func (s *ArticleStore) UpsertByURL(ctx context.Context, article *domain.Article) (int64, bool, error) {
	ex := GetExecutor(ctx, s.db)

	var id int64
	err := sqlx.GetContext(ctx, ex, &id,
		"SELECT id FROM articles WHERE source_url = $1", article.SourceURL)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		query := `
			INSERT INTO articles (
				issue_number, year, month, title, author_name, summary,
				body_html, body_text, source_url, category, publish_date,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
			RETURNING id`
		err = sqlx.GetContext(ctx, ex, &id, query,
			article.IssueNumber,
			article.Year,
			article.Month,
			article.Title,
			article.AuthorName,
			article.Summary,
			article.BodyHTML,
			article.BodyText,
			article.SourceURL,
			article.Category,
			article.PublishDate,
		)
		if err != nil {
			return 0, false, err
		}
		return id, true, nil

	case err != nil:
		return 0, false, err

	default:
		query := `
			UPDATE articles SET
				issue_number = $1,
				year = $2,
				month = $3,
				title = $4,
				author_name = $5,
				summary = $6,
				body_html = $7,
				body_text = $8,
				category = $9,
				publish_date = $10,
				updated_at = NOW()
			WHERE id = $11`
		if _, err := ex.ExecContext(ctx, query,
			article.IssueNumber,
			article.Year,
			article.Month,
			article.Title,
			article.AuthorName,
			article.Summary,
			article.BodyHTML,
			article.BodyText,
			article.Category,
			article.PublishDate,
			id,
		); err != nil {
			return 0, false, err
		}
		return id, false, nil
	}
}

func (s *ArticleStore) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	var article domain.Article
	err := s.db.GetContext(ctx, &article,
		"SELECT * FROM articles WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Update overwrites all mutable fields of an existing record. Used by the
// editor save path after a manual edit or a single-article re-scrape.
func (s *ArticleStore) Update(ctx context.Context, article *domain.Article) error {
	query := `
		UPDATE articles SET
			issue_number = $1,
			year = $2,
			month = $3,
			title = $4,
			author_name = $5,
			summary = $6,
			body_html = $7,
			body_text = $8,
			category = $9,
			publish_date = $10,
			updated_at = NOW()
		WHERE id = $11`

	res, err := s.db.ExecContext(ctx, query,
		article.IssueNumber,
		article.Year,
		article.Month,
		article.Title,
		article.AuthorName,
		article.Summary,
		article.BodyHTML,
		article.BodyText,
		article.Category,
		article.PublishDate,
		article.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *ArticleStore) CountByPeriod(ctx context.Context, year int, month string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM articles WHERE year = $1 AND month = $2", year, month)
	return count, err
}

func (s *ArticleStore) ListByPeriod(ctx context.Context, year int, month string) ([]domain.Article, error) {
	var articles []domain.Article
	err := s.db.SelectContext(ctx, &articles,
		"SELECT * FROM articles WHERE year = $1 AND month = $2 ORDER BY created_at DESC",
		year, month)
	return articles, err
}

func (s *ArticleStore) DeleteByPeriod(ctx context.Context, year int, month string) (int64, error) {
	ex := GetExecutor(ctx, s.db)
	res, err := ex.ExecContext(ctx,
		"DELETE FROM articles WHERE year = $1 AND month = $2", year, month)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *ArticleStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	return err
}

// Stats aggregates stored volume per period: record count plus character
// and word totals of the stored bodies.
func (s *ArticleStore) Stats(ctx context.Context) ([]domain.PeriodStat, error) {
	query := `
		SELECT
			year,
			month,
			COUNT(*) AS count,
			COALESCE(SUM(LENGTH(body_html)), 0) AS chars,
			COALESCE(SUM(
				CASE WHEN TRIM(body_text) = '' THEN 0
				     ELSE ARRAY_LENGTH(REGEXP_SPLIT_TO_ARRAY(TRIM(body_text), '\s+'), 1)
				END
			), 0) AS words
		FROM articles
		GROUP BY year, month
		ORDER BY year DESC, month`

	var stats []domain.PeriodStat
	err := s.db.SelectContext(ctx, &stats, query)
	return stats, err
}
