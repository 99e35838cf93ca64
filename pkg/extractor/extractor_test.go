package extractor

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dtnitsch/clickbait-detector/models"
)

func mustExtract(t *testing.T, html string) models.ExtractedContent {
	t.Helper()
	content, err := Extract(html, "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	return content
}

func TestExtract_TitleResolution(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "open graph title wins over everything",
			html: `<html><head><title>Doc title</title>
				<meta name="twitter:title" content="Twitter title">
				<meta property="og:title" content="OG title"></head>
				<body><h1>Heading</h1></body></html>`,
			want: "OG title",
		},
		{
			name: "twitter title when og is missing",
			html: `<html><head><title>Doc title</title>
				<meta name="twitter:title" content="Twitter title"></head>
				<body><h1>Heading</h1></body></html>`,
			want: "Twitter title",
		},
		{
			name: "empty og title falls through",
			html: `<html><head><title>Doc title</title>
				<meta property="og:title" content="   "></head>
				<body><h1> Heading </h1></body></html>`,
			want: "Heading",
		},
		{
			name: "document title as last resort",
			html: `<html><head><title> Doc title </title></head><body><p>x</p></body></html>`,
			want: "Doc title",
		},
		{
			name: "no title source at all",
			html: `<html><head></head><body><p>just text</p></body></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustExtract(t, tt.html)
			if got.Title != tt.want {
				t.Errorf("Title = %q, want %q", got.Title, tt.want)
			}
		})
	}
}

func TestExtract_HeaderResolution(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "entry-title beats the first h1",
			html: `<body><h1>Site name</h1><article><h1 class="entry-title">Real headline</h1></article></body>`,
			want: "Real headline",
		},
		{
			name: "article h1 beats a bare h1",
			html: `<body><h1>Site name</h1><article><h1>Article headline</h1></article></body>`,
			want: "Article headline",
		},
		{
			name: "first existing match wins even when empty",
			html: `<body><h2 class="entry-title">   </h2><h1>Fallback</h1></body>`,
			want: "",
		},
		{
			name: "no header",
			html: `<body><p>nothing</p></body>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustExtract(t, tt.html)
			if got.Header != tt.want {
				t.Errorf("Header = %q, want %q", got.Header, tt.want)
			}
		})
	}
}

func TestExtract_ContainerThreshold(t *testing.T) {
	tests := []struct {
		name  string
		chars int
		want  string
	}{
		{name: "exactly 200 characters does not qualify", chars: 200, want: ""},
		{name: "201 characters qualifies", chars: 201, want: strings.Repeat("a", 201)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := "<html><head><title>T</title></head><body><article>  " +
				strings.Repeat("a", tt.chars) + "  </article></body></html>"
			got := mustExtract(t, html)
			if got.Content != tt.want {
				t.Errorf("Content has %d chars, want %d", len(got.Content), len(tt.want))
			}
		})
	}
}

func TestExtract_NoiseRemovedInsideSelectedContainer(t *testing.T) {
	body := strings.Repeat("Genuine article sentence. ", 12)
	html := `<html><head><title>T</title></head><body>
		<article>
			<p>` + body + `</p>
			<div class="ads">BUY NOW ads block</div>
			<div id="share-buttons">Share on everything</div>
			<section class="user-comments">Angry comment</section>
			<script>var tracking = true;</script>
		</article></body></html>`

	got := mustExtract(t, html)

	if !strings.Contains(got.Content, "Genuine article sentence.") {
		t.Fatalf("Content lost the article body: %q", got.Content)
	}
	for _, noise := range []string{"BUY NOW", "Share on everything", "Angry comment", "tracking"} {
		if strings.Contains(got.Content, noise) {
			t.Errorf("Content contains noise %q", noise)
		}
	}
}

func TestExtract_KeepsClassesContainingAdLikeFragments(t *testing.T) {
	body := strings.Repeat("Body paragraph with the details of the story. ", 6)
	html := `<html><head><title>T</title></head><body><article>
		<p class="lead-text">Lead paragraph summarizing the story.</p>
		<div class="thread-summary">Thread summary stays.</div>
		<p id="download-note">Download note stays.</p>
		<p>` + body + `</p>
		<div class="sidebar-ads">Sponsored</div>
	</article></body></html>`

	got := mustExtract(t, html)

	for _, want := range []string{"Lead paragraph summarizing the story.", "Thread summary stays.", "Download note stays."} {
		if !strings.Contains(got.Content, want) {
			t.Errorf("Content lost %q: %q", want, got.Content)
		}
	}
	if strings.Contains(got.Content, "Sponsored") {
		t.Errorf("Content kept the ads block: %q", got.Content)
	}
}

func TestExtract_NoiseMatchIsCaseSensitive(t *testing.T) {
	body := strings.Repeat("Readable text. ", 20)
	html := `<body><article><p>` + body + `</p><div class="ADS">Upper case kept</div></article></body>`

	got := mustExtract(t, html)
	if !strings.Contains(got.Content, "Upper case kept") {
		t.Errorf("upper-case class should not match the noise patterns, content = %q", got.Content)
	}
}

func TestExtract_FallbackLargestBlocks(t *testing.T) {
	small := strings.Repeat("s", 150)
	large := strings.Repeat("L", 180)
	tiny := "too short to count"

	html := `<html><head><title>T</title></head><body>
		<p>` + small + `</p>
		<p>` + tiny + `</p>
		<p>` + large + `</p>
	</body></html>`

	got := mustExtract(t, html)
	want := large + " " + small
	if got.Content != want {
		t.Errorf("Content = %q, want largest block first then the next", got.Content)
	}
}

func TestExtract_FallbackKeepsTopTen(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<body>")
	for i := 0; i < 12; i++ {
		sb.WriteString("<p>")
		sb.WriteString(strings.Repeat(string(rune('a'+i)), 101+i))
		sb.WriteString("</p>")
	}
	sb.WriteString("</body>")

	got := mustExtract(t, sb.String())
	parts := strings.Split(got.Content, " ")
	if len(parts) != maxFallbackBlocks {
		t.Fatalf("fallback joined %d blocks, want %d", len(parts), maxFallbackBlocks)
	}
	if parts[0][0] != 'l' {
		t.Errorf("first block starts with %q, want the longest block", parts[0][:1])
	}
	if strings.Contains(got.Content, "aaaa") || strings.Contains(got.Content, "bbbb") {
		t.Error("the two shortest blocks should have been dropped")
	}
}

func TestExtract_ShortPageStillSucceeds(t *testing.T) {
	got := mustExtract(t, `<html><head><title>T</title></head><body><p>short</p></body></html>`)

	if got.Title != "T" {
		t.Errorf("Title = %q, want %q", got.Title, "T")
	}
	if got.Content != "" {
		t.Errorf("Content = %q, want empty", got.Content)
	}
}

func TestExtract_ContentIsCapped(t *testing.T) {
	word := "słowo "
	body := strings.Repeat(word, 4000)
	got := mustExtract(t, `<body><article>`+body+`</article></body>`)

	if n := utf8.RuneCountInString(got.Content); n > models.MaxContentChars {
		t.Errorf("Content has %d characters, cap is %d", n, models.MaxContentChars)
	}
	if strings.HasSuffix(got.Content, " ") {
		t.Error("Content should not end with whitespace after truncation")
	}
}

func TestExtract_Metadata(t *testing.T) {
	html := `<html><head><title>T</title>
		<meta name="description" content="A description">
		<meta name="keywords" content="a, b, c">
		<meta name="author" content="Jan Kowalski">
		<meta property="article:published_time" content="2024-05-01T10:00:00Z">
		</head><body><p>x</p></body></html>`

	got := mustExtract(t, html)
	if got.Description != "A description" {
		t.Errorf("Description = %q", got.Description)
	}
	if got.Keywords != "a, b, c" {
		t.Errorf("Keywords = %q", got.Keywords)
	}
	if got.Author != "Jan Kowalski" {
		t.Errorf("Author = %q", got.Author)
	}
	if got.PublishDate != "2024-05-01T10:00:00Z" {
		t.Errorf("PublishDate = %q", got.PublishDate)
	}
}

func TestExtract_MetadataFallbacks(t *testing.T) {
	html := `<html><head><title>T</title>
		<meta property="og:description" content="OG description"></head>
		<body><header><span class="author"> Anna
			Nowak </span><time datetime="2023-01-02">2 stycznia</time></header>
		<p>x</p></body></html>`

	got := mustExtract(t, html)
	if got.Description != "OG description" {
		t.Errorf("Description = %q, want og:description fallback", got.Description)
	}
	if got.Author != "Anna Nowak" {
		t.Errorf("Author = %q, want .author fallback", got.Author)
	}
	if got.PublishDate != "2023-01-02" {
		t.Errorf("PublishDate = %q, want <time> fallback", got.PublishDate)
	}
}

func TestExtract_MissingMetadataIsEmpty(t *testing.T) {
	got := mustExtract(t, `<html><head><title>T</title></head><body><p>x</p></body></html>`)

	if got.Description != "" || got.Keywords != "" || got.Author != "" || got.PublishDate != "" {
		t.Errorf("expected empty metadata, got %+v", got)
	}
}
