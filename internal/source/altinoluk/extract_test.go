package altinoluk

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func longParagraphs(n int) string {
	var sb strings.Builder
	for sb.Len() < n {
		sb.WriteString("<p>Gönül dünyasına dair uzun bir bahis, satır satır devam ediyor.</p>")
	}
	return sb.String()
}

func articlePage(body string) string {
	return fmt.Sprintf(`<html><head><title>Deneme Yazısı | Altınoluk</title></head><body>
		<h1 class="main-title">Deneme Yazısı</h1>
		<div class="post-author"><a href="/yazar/a">Ahmet Taşgetiren</a></div>
		<div class="entry-content">
			<div class="entry-spot">Kısa spot metni</div>
			%s
			<div class="social-share">paylaş</div>
		</div>
	</body></html>`, body)
}

func TestExtract_FullPage(t *testing.T) {
	s := newTestSource("https://www.altinoluk.com.tr")
	raw := articlePage(longParagraphs(1200))
	ext := s.extract(parseDoc(t, raw), raw)

	assert.Equal(t, "Deneme Yazısı", ext.Title)
	assert.Equal(t, "Ahmet Taşgetiren", ext.Author)
	assert.Equal(t, "Kısa spot metni", ext.Summary)
	assert.Contains(t, ext.BodyHTML, "Gönül dünyasına")
	assert.NotContains(t, ext.BodyHTML, "entry-spot")
	assert.NotContains(t, ext.BodyHTML, "social-share")
	assert.Contains(t, ext.BodyText, "Gönül dünyasına")
	assert.False(t, ext.Truncated)
}

func TestExtract_TitleFallbacks(t *testing.T) {
	s := newTestSource("https://www.altinoluk.com.tr")

	raw := `<html><head><title>Sadece Başlık | Altınoluk</title></head><body><h1>H1 Başlık</h1></body></html>`
	ext := s.extract(parseDoc(t, raw), raw)
	assert.Equal(t, "H1 Başlık", ext.Title)

	raw = `<html><head><title>Sadece Başlık | Altınoluk</title></head><body><p>metin</p></body></html>`
	ext = s.extract(parseDoc(t, raw), raw)
	assert.Equal(t, "Sadece Başlık", ext.Title)
}

func TestExtract_AuthorFallbacks(t *testing.T) {
	s := newTestSource("https://www.altinoluk.com.tr")

	raw := `<html><body><div class="author-info"><h3><a href="#">Yazar İki</a></h3></div></body></html>`
	ext := s.extract(parseDoc(t, raw), raw)
	assert.Equal(t, "Yazar İki", ext.Author)

	raw = `<html><body><span class="author">Yazar Üç</span></body></html>`
	ext = s.extract(parseDoc(t, raw), raw)
	assert.Equal(t, "Yazar Üç", ext.Author)

	raw = `<html><body><p>kimse yok</p></body></html>`
	ext = s.extract(parseDoc(t, raw), raw)
	assert.Empty(t, ext.Author)
}

func TestExtract_PicksLongestContainer(t *testing.T) {
	s := newTestSource("https://www.altinoluk.com.tr")
	short := strings.Repeat("a", 200)
	long := strings.Repeat("b", 1200)
	raw := fmt.Sprintf(`<html><body>
		<div id="content"><p>%s</p></div>
		<div class="entry-content"><p>%s</p></div>
	</body></html>`, short, long)

	ext := s.extract(parseDoc(t, raw), raw)
	assert.Contains(t, ext.BodyHTML, long)
	assert.NotContains(t, ext.BodyHTML, short)
}

func TestExtract_PaywallPhraseForcesTruncated(t *testing.T) {
	s := newTestSource("https://www.altinoluk.com.tr")
	raw := articlePage(longParagraphs(2000) + "<div class='alert'>Devamı için ABONELİK GEREKMEKTEDİR</div>")
	ext := s.extract(parseDoc(t, raw), raw)

	// long body, but the subscription prompt wins
	assert.True(t, ext.Truncated)
}

func TestExtract_ShortBodyIsTruncated(t *testing.T) {
	s := newTestSource("https://www.altinoluk.com.tr")
	raw := articlePage("<p>çok kısa</p>")
	ext := s.extract(parseDoc(t, raw), raw)

	assert.True(t, ext.Truncated)
}

func TestExtract_NoContainerDegradesToEmpty(t *testing.T) {
	s := newTestSource("https://www.altinoluk.com.tr")
	raw := `<html><body><span>şablon dışı sayfa</span></body></html>`
	ext := s.extract(parseDoc(t, raw), raw)

	assert.Empty(t, ext.BodyHTML)
	assert.Empty(t, ext.BodyText)
	assert.True(t, ext.Truncated)
}

func TestExtractArticle_EndToEnd(t *testing.T) {
	page := articlePage(longParagraphs(1200))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	s := newTestSource(srv.URL)
	ext, err := s.ExtractArticle(context.Background(), srv.URL+"/deneme.html", "abc")
	require.NoError(t, err)
	assert.Equal(t, "Deneme Yazısı", ext.Title)
	assert.False(t, ext.Truncated)
}

func TestExtractArticle_FetchFailure(t *testing.T) {
	s := newTestSource("http://127.0.0.1:1")
	_, err := s.ExtractArticle(context.Background(), "http://127.0.0.1:1/deneme.html", "")
	assert.Error(t, err)
}
