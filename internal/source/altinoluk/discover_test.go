package altinoluk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestCandidates_TableStrategy(t *testing.T) {
	s := newTestSource("https://www.altinoluk.com.tr")
	doc := parseDoc(t, `
		<table><tbody>
			<tr><td><a href="/a.html">Title A</a></td></tr>
			<tr><td><a href="/b.html">Title B</a></td></tr>
			<tr><td><a href="/yazar/x">Author X</a></td></tr>
		</tbody></table>`)

	got := s.candidates(doc)
	require.Len(t, got, 3)
	assert.Equal(t, "Title A", got[0].Title)
	assert.Equal(t, "https://www.altinoluk.com.tr/a.html", got[0].SourceURL)
	assert.Equal(t, "Title B", got[1].Title)
	// the table strategy does not filter author links; only the fallback does
	assert.Equal(t, "Author X", got[2].Title)
}

func TestCandidates_FallbackExcludesAuthorLinks(t *testing.T) {
	s := newTestSource("https://www.altinoluk.com.tr")
	doc := parseDoc(t, `
		<ul class="list-post">
			<li><a href="/a.html">Title A</a></li>
			<li><a href="/yazar/x">Author X</a></li>
			<li><a href="/b.html">Title B</a></li>
		</ul>`)

	got := s.candidates(doc)
	require.Len(t, got, 2)
	assert.Equal(t, "Title A", got[0].Title)
	assert.Equal(t, "Title B", got[1].Title)
}

func TestCandidates_PostBlockStyle(t *testing.T) {
	s := newTestSource("https://www.altinoluk.com.tr")
	doc := parseDoc(t, `
		<div class="post-block-style"><a href="https://www.altinoluk.com.tr/c.html">Title C</a></div>`)

	got := s.candidates(doc)
	require.Len(t, got, 1)
	assert.Equal(t, "https://www.altinoluk.com.tr/c.html", got[0].SourceURL)
}

func TestCandidates_TableWinsOverFallback(t *testing.T) {
	s := newTestSource("https://www.altinoluk.com.tr")
	doc := parseDoc(t, `
		<table><tbody><tr><td><a href="/a.html">Table Title</a></td></tr></tbody></table>
		<ul class="list-post"><li><a href="/b.html">List Title</a></li></ul>`)

	got := s.candidates(doc)
	require.Len(t, got, 1)
	assert.Equal(t, "Table Title", got[0].Title)
}

func TestCandidates_NoMatchingStructure(t *testing.T) {
	s := newTestSource("https://www.altinoluk.com.tr")
	doc := parseDoc(t, `<div class="unrelated"><p>nothing here</p></div>`)

	assert.Empty(t, s.candidates(doc))
}

func TestDiscover_EmptyPageIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>boş arşiv</p></body></html>"))
	}))
	defer srv.Close()

	s := newTestSource(srv.URL)
	got, err := s.Discover(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscoverIssue_FetchErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := newTestSource(srv.URL)
	_, err := s.DiscoverIssue(context.Background(), 479)
	assert.Error(t, err)
}
