package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/meoncu/34webdergi/internal/domain"
)

type ArticleStore interface {
	UpsertByURL(ctx context.Context, article *domain.Article) (int64, bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	Update(ctx context.Context, article *domain.Article) error
	CountByPeriod(ctx context.Context, year int, month string) (int, error)
	ListByPeriod(ctx context.Context, year int, month string) ([]domain.Article, error)
	DeleteByPeriod(ctx context.Context, year int, month string) (int64, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) ([]domain.PeriodStat, error)
}

type SubscriptionStore interface {
	Active(ctx context.Context) (*domain.Subscription, error)
	TouchLastSynced(ctx context.Context, id int64, at time.Time) error
}

type Source interface {
	ID() string
	Name() string
	IssueNumber(year int, month domain.Month) int
	DiscoverIssue(ctx context.Context, issue int) ([]domain.Candidate, error)
	ExtractArticle(ctx context.Context, articleURL, cookie string) (*domain.Extraction, error)
}

type SecretDecrypter interface {
	Decrypt(ciphertext string) (string, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, article *domain.Article, isNew bool) error
	Close() error
}
