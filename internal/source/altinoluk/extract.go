package altinoluk

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/meoncu/34webdergi/internal/domain"
)

// bodySelectors are candidate content containers, in template priority
// order. Several can match on one page; the one with the most text wins.
var bodySelectors = []string{"#content", ".entry-content", ".post-content-area", ".article-content", "article"}

// stripSelector removes known non-content substructures from the chosen
// container before serializing.
const stripSelector = ".entry-spot, .alert, .alert-warning, .social-share, .author-box, .post-meta, script, style, .ads, .advertisement"

// paywallPhrases are the site's subscription prompts, matched
// case-insensitively against the whole page.
var paywallPhrases = []string{
	"abonelik gerekmektedir",
	"üye girişi yap",
	"abone olmak için tıklayınız",
}

// truncationThreshold is the body HTML length below which content is
// assumed cut short by the paywall.
const truncationThreshold = 800

// ExtractArticle fetches one article page and extracts title, author,
// summary and body. The cookie authenticates the subscriber session; a
// missing or stale cookie typically yields Truncated content. Unmatched
// structural parts come back as empty strings, not errors.
func (s *Source) ExtractArticle(ctx context.Context, articleURL, cookie string) (*domain.Extraction, error) {
	doc, raw, err := s.fetch(ctx, articleURL, cookie)
	if err != nil {
		return nil, err
	}

	ext := s.extract(doc, raw)
	s.logger.Debug("extracted article",
		"url", articleURL,
		"title", ext.Title,
		"body_len", len(ext.BodyHTML),
		"truncated", ext.Truncated,
	)
	return ext, nil
}

func (s *Source) extract(doc *goquery.Document, rawPage string) *domain.Extraction {
	ext := &domain.Extraction{
		Title:   resolveTitle(doc),
		Author:  resolveAuthor(doc),
		Summary: strings.TrimSpace(doc.Find(".entry-spot").First().Text()),
	}

	if container := bestContainer(doc); container != nil {
		ext.BodyHTML = cleanBody(container)
		ext.BodyText = s.bodyText(ext.BodyHTML)
	}

	pageText := strings.ToLower(rawPage)
	for _, phrase := range paywallPhrases {
		if strings.Contains(pageText, phrase) {
			ext.Truncated = true
			break
		}
	}
	if len(ext.BodyHTML) < truncationThreshold {
		ext.Truncated = true
	}

	return ext
}

// resolveTitle tries the designated title element, then the first heading,
// then the page <title> split at the site's " | " suffix.
func resolveTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find(".main-title").First().Text()); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	title := doc.Find("title").Text()
	return strings.TrimSpace(strings.SplitN(title, "|", 2)[0])
}

func resolveAuthor(doc *goquery.Document) string {
	if a := strings.TrimSpace(doc.Find(".post-author a").First().Text()); a != "" {
		return a
	}
	if a := strings.TrimSpace(doc.Find(".author-info h3 a").First().Text()); a != "" {
		return a
	}
	return strings.TrimSpace(doc.Find(".author").First().Text())
}

// bestContainer picks the single element with the most plain text among
// all body selector matches. Some templates carry several matching
// containers where only one holds the article; text length separates them.
// Ties keep the earlier match.
func bestContainer(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	bestLen := 0

	for _, sel := range bodySelectors {
		doc.Find(sel).Each(func(_ int, el *goquery.Selection) {
			if l := len(strings.TrimSpace(el.Text())); l > bestLen {
				best = el
				bestLen = l
			}
		})
	}

	return best
}

func cleanBody(container *goquery.Selection) string {
	clone := container.Clone()
	clone.Find(stripSelector).Remove()

	html, err := clone.Html()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(html)
}

// bodyText derives the searchable plain-text rendition from the cleaned
// body HTML.
func (s *Source) bodyText(bodyHTML string) string {
	if bodyHTML == "" {
		return ""
	}
	text, err := s.converter.ConvertString(bodyHTML)
	if err != nil {
		s.logger.Warn("markdown conversion failed", "error", err)
		return ""
	}
	return strings.TrimSpace(text)
}
