package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/meoncu/34webdergi/internal/config"
	"github.com/meoncu/34webdergi/internal/domain"
	"github.com/meoncu/34webdergi/internal/publisher"
	"github.com/meoncu/34webdergi/internal/scheduler"
	"github.com/meoncu/34webdergi/internal/secrets"
	"github.com/meoncu/34webdergi/internal/service"
	"github.com/meoncu/34webdergi/internal/source/altinoluk"
	"github.com/meoncu/34webdergi/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	daemon := flag.Bool("daemon", false, "run the periodic current-period sync instead of a one-shot")

	year := flag.Int("year", 0, "publication year to import")
	month := flag.String("month", "", "publication month, Turkish name or 1-12")
	force := flag.Bool("force", false, "fetch full article content during import")
	cookie := flag.String("cookie", "", "subscriber session cookie or bare PHPSESSID token")
	onConflict := flag.String("on-conflict", "abort", "existing-period policy: clear, merge or abort")

	deletePeriod := flag.Bool("delete-period", false, "delete the given period's records instead of importing")
	rescrapeID := flag.Int64("rescrape", 0, "re-extract and save a single stored article by id")
	showStats := flag.Bool("stats", false, "print per-period storage statistics and exit")

	addProfile := flag.Bool("add-profile", false, "store a subscription login profile and exit")
	profileName := flag.String("profile-name", "main", "profile name for -add-profile")
	profileUser := flag.String("profile-user", "", "site username for -add-profile")
	profilePass := flag.String("profile-pass", "", "site password for -add-profile, encrypted at rest")

	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	articleStore := postgres.NewArticleStore(db)
	subscriptionStore := postgres.NewSubscriptionStore(db)
	txManager := postgres.NewTransactionManager(db)

	codec, err := secrets.NewCodec(cfg.Encryption.Key)
	if err != nil {
		logger.Error("failed to init encryption", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if *addProfile {
		if *profileUser == "" || *profilePass == "" {
			logger.Error("-add-profile needs -profile-user and -profile-pass")
			os.Exit(1)
		}
		encrypted, err := codec.Encrypt(*profilePass)
		if err != nil {
			logger.Error("failed to encrypt password", "error", err)
			os.Exit(1)
		}
		id, err := subscriptionStore.Create(ctx, &domain.Subscription{
			Name:              *profileName,
			LoginURL:          cfg.Site.BaseURL + "/giris",
			Username:          *profileUser,
			PasswordEncrypted: encrypted,
		})
		if err != nil {
			logger.Error("failed to store profile", "error", err)
			os.Exit(1)
		}
		logger.Info("profile stored", "id", id, "name", *profileName)
		return
	}

	if *showStats {
		stats, err := articleStore.Stats(ctx)
		if err != nil {
			logger.Error("failed to load statistics", "error", err)
			os.Exit(1)
		}
		for _, st := range stats {
			fmt.Printf("%d %s: %d articles, %d chars, %d words\n",
				st.Year, st.Month, st.Count, st.Chars, st.Words)
		}
		return
	}

	source := altinoluk.New(altinoluk.Config{
		BaseURL:        cfg.Site.BaseURL,
		Timeout:        cfg.Site.Timeout,
		UserAgent:      cfg.Site.UserAgent,
		AcceptLanguage: cfg.Site.AcceptLanguage,
		ReferenceIssue: cfg.Site.ReferenceIssue,
		ReferenceYear:  cfg.Site.ReferenceYear,
		ReferenceMonth: domain.Month(cfg.Site.ReferenceMonth),
	}, logger)

	rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitMQ.Close()

	syncService := service.NewSyncService(
		source,
		articleStore,
		subscriptionStore,
		txManager,
		rabbitMQ,
		codec,
		logger,
	)

	if *rescrapeID != 0 {
		updated, truncated, err := syncService.Rescrape(ctx, *rescrapeID, *cookie)
		if err != nil {
			logger.Error("rescrape failed", "error", err)
			os.Exit(1)
		}
		if err := syncService.SaveArticle(ctx, updated); err != nil {
			logger.Error("failed to save article", "error", err)
			os.Exit(1)
		}
		fmt.Printf("rescraped article %d: %q, %d chars, truncated=%v\n",
			updated.ID, updated.Title, len(updated.BodyHTML), truncated)
		return
	}

	if *daemon {
		sched := scheduler.NewScheduler(syncService, cfg.Sync.Interval, cfg.Sync.ForceScrape, *cookie, logger)

		logger.Info("starting archive syncer",
			"source", source.Name(),
			"interval", cfg.Sync.Interval,
		)

		if err := sched.Start(ctx); err != nil && err != context.Canceled {
			logger.Error("scheduler error", "error", err)
			os.Exit(1)
		}
		return
	}

	if *year == 0 || *month == "" {
		logger.Error("one-shot mode needs -year and -month")
		os.Exit(1)
	}

	m, err := domain.ParseMonth(*month)
	if err != nil {
		logger.Error("invalid month", "error", err)
		os.Exit(1)
	}

	if *deletePeriod {
		count, err := syncService.DeletePeriod(ctx, *year, m)
		if err != nil {
			logger.Error("failed to delete period", "error", err)
			os.Exit(1)
		}
		fmt.Printf("deleted %d articles for %d %s\n", count, *year, m)
		return
	}

	policy, err := domain.ParseConflictPolicy(*onConflict)
	if err != nil {
		logger.Error("invalid conflict policy", "error", err)
		os.Exit(1)
	}

	stats, err := syncService.Sync(ctx, domain.SyncRequest{
		Year:        *year,
		Month:       m,
		ForceScrape: *force,
		Cookie:      *cookie,
		OnConflict:  policy,
	})
	if err != nil {
		logger.Error("sync failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("issue %d: discovered %d, added %d, updated %d, extracted %d, truncated %d, errors %d in %s\n",
		stats.Issue, stats.Discovered, stats.Added, stats.Updated,
		stats.Extracted, stats.Truncated, stats.Errors, stats.Duration.Round(time.Millisecond))
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
