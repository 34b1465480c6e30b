package domain

import (
	"errors"
	"fmt"
	"time"
)

// ConflictPolicy decides what happens when the requested period already
// has stored articles. The choice is an explicit request parameter so
// unattended runs never block on a prompt.
type ConflictPolicy string

const (
	// ConflictClear deletes the period's existing records first.
	ConflictClear ConflictPolicy = "clear"
	// ConflictMerge keeps existing records and upserts over them.
	ConflictMerge ConflictPolicy = "merge"
	// ConflictAbort stops the run without touching anything.
	ConflictAbort ConflictPolicy = "abort"
)

func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch ConflictPolicy(s) {
	case ConflictClear, ConflictMerge, ConflictAbort:
		return ConflictPolicy(s), nil
	}
	return "", fmt.Errorf("unknown conflict policy %q", s)
}

// ErrNoActiveSubscription is returned when a sync is requested without a
// configured source profile.
var ErrNoActiveSubscription = errors.New("no active subscription profile")

// ErrDuplicatePeriod is returned when the period already holds records and
// the policy is abort.
type ErrDuplicatePeriod struct {
	Year  int
	Month Month
	Count int
}

func (e *ErrDuplicatePeriod) Error() string {
	return fmt.Sprintf("%d %s already has %d articles", e.Year, e.Month, e.Count)
}

// SyncRequest describes one orchestration run.
type SyncRequest struct {
	Year        int
	Month       Month
	ForceScrape bool
	Cookie      string
	OnConflict  ConflictPolicy
}

// SyncStats holds the aggregate outcome of one sync run.
type SyncStats struct {
	Issue      int
	Discovered int
	Added      int
	Updated    int
	Extracted  int
	Truncated  int
	Cleared    int64
	Errors     int
	Duration   time.Duration
}
