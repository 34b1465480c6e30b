package altinoluk

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/meoncu/34webdergi/internal/domain"
)

// DiscoverIssue lists the article candidates of one issue.
func (s *Source) DiscoverIssue(ctx context.Context, issue int) ([]domain.Candidate, error) {
	return s.Discover(ctx, s.IssueURL(issue))
}

// Discover fetches an archive listing page and extracts its article
// candidates. An empty result is not an error: a period with no articles
// at that URL is a valid, reportable outcome.
func (s *Source) Discover(ctx context.Context, pageURL string) ([]domain.Candidate, error) {
	doc, _, err := s.fetch(ctx, pageURL, "")
	if err != nil {
		return nil, err
	}

	candidates := s.candidates(doc)
	s.logger.Debug("discovered candidates", "url", pageURL, "count", len(candidates))
	return candidates, nil
}

// candidates applies the archive page strategies in order. The table
// layout is the current template; the post-block fallback covers older
// issue pages, where author bio links (/yazar/...) sit between the
// article links and must be skipped.
func (s *Source) candidates(doc *goquery.Document) []domain.Candidate {
	var out []domain.Candidate

	doc.Find("table tbody tr").Each(func(_ int, tr *goquery.Selection) {
		link := tr.Find("a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		if title != "" && href != "" {
			out = append(out, domain.Candidate{Title: title, SourceURL: s.resolveURL(href)})
		}
	})

	if len(out) > 0 {
		return out
	}

	doc.Find(".list-post li, .post-block-style").Each(func(_ int, li *goquery.Selection) {
		link := li.Find("a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		if title != "" && href != "" && !strings.Contains(href, "/yazar/") {
			out = append(out, domain.Candidate{Title: title, SourceURL: s.resolveURL(href)})
		}
	})

	return out
}
