package altinoluk

import (
	"fmt"

	"github.com/meoncu/34webdergi/internal/domain"
)

// IssueNumber computes the magazine's sequential issue number for a
// period. The magazine publishes exactly one issue per calendar month, so
// the number is a linear offset from the configured anchor. Periods
// outside the publication range produce out-of-range numbers; discovery
// on those simply finds nothing.
func (s *Source) IssueNumber(year int, month domain.Month) int {
	return s.refIssue - ((s.refYear-year)*12 - (month.Index() - s.refMonth.Index()))
}

// IssueURL builds the archive listing URL for an issue.
func (s *Source) IssueURL(issue int) string {
	return fmt.Sprintf("%s/arsiv/sayi-%d", s.baseURL, issue)
}
