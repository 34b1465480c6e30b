package domain

import "time"

// Article categories as the archive stores them.
const (
	CategoryDraft     = "Taslak"
	CategoryPublished = "Yayında"
)

// Article is one archived magazine piece. SourceURL is the dedup key:
// re-running a sync for the same period upserts by it instead of
// inserting twice.
type Article struct {
	ID          int64     `db:"id"`
	IssueNumber string    `db:"issue_number"`
	Year        int       `db:"year"`
	Month       string    `db:"month"`
	Title       string    `db:"title"`
	AuthorName  string    `db:"author_name"`
	Summary     string    `db:"summary"`
	BodyHTML    string    `db:"body_html"`
	BodyText    string    `db:"body_text"`
	SourceURL   string    `db:"source_url"`
	Category    string    `db:"category"`
	PublishDate string    `db:"publish_date"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Candidate is a discovered (title, URL) pair not yet fully extracted.
type Candidate struct {
	Title     string
	SourceURL string
}

// Extraction is the result of pulling a single article page apart.
// Empty fields mean the page didn't match the known structure; Truncated
// means the content is suspected paywalled or cut short.
type Extraction struct {
	Title     string
	Author    string
	Summary   string
	BodyHTML  string
	BodyText  string
	Truncated bool
}

// Subscription is a stored login profile for the external site. The
// password is kept AES-encrypted at rest and only decrypted for the
// duration of a sync run.
type Subscription struct {
	ID                int64      `db:"id"`
	Name              string     `db:"name"`
	LoginURL          string     `db:"login_url"`
	Username          string     `db:"username"`
	PasswordEncrypted string     `db:"password_encrypted"`
	LastSyncedAt      *time.Time `db:"last_synced_at"`
	CreatedAt         time.Time  `db:"created_at"`
}

// PeriodStat aggregates stored content per (year, month).
type PeriodStat struct {
	Year  int    `db:"year"`
	Month string `db:"month"`
	Count int    `db:"count"`
	Chars int64  `db:"chars"`
	Words int64  `db:"words"`
}
