package extractor

import (
	"net/url"
	"strings"
	"time"

	"github.com/dtnitsch/clickbait-detector/pkg/dom"
	"github.com/dyatlov/go-opengraph/opengraph"
	"github.com/go-shiori/go-readability"
)

type metadata struct {
	description string
	keywords    string
	author      string
	publishDate string
}

// extractMetadata is best effort: every field that cannot be found stays empty.
func extractMetadata(tree dom.Tree, html, sourceURL string) metadata {
	m := metadata{
		description: firstMetaContent(tree, descriptionSelectors),
		keywords:    firstMetaContent(tree, keywordSelectors),
		author:      firstMetaContent(tree, authorSelectors),
		publishDate: firstMetaContent(tree, publishDateSelectors),
	}

	if m.description == "" || m.publishDate == "" {
		og := opengraph.NewOpenGraph()
		if err := og.ProcessHTML(strings.NewReader(html)); err == nil {
			if m.description == "" {
				m.description = strings.TrimSpace(og.Description)
			}
			if m.publishDate == "" && og.Article != nil && og.Article.PublishedTime != nil {
				m.publishDate = og.Article.PublishedTime.Format(time.RFC3339)
			}
		}
	}

	if m.author == "" {
		if n, ok := tree.First(".author"); ok {
			m.author = collapse(n.Text())
		}
	}
	if m.publishDate == "" {
		if n, ok := tree.First("time[datetime]"); ok {
			m.publishDate, _ = n.Attr("datetime")
			m.publishDate = strings.TrimSpace(m.publishDate)
		}
	}

	if m.author == "" || m.publishDate == "" {
		enrichFromReadability(&m, html, sourceURL)
	}

	return m
}

// enrichFromReadability fills author and publish date from bylines and
// JSON-LD that plain meta tags do not expose.
func enrichFromReadability(m *metadata, html, sourceURL string) {
	pageURL, err := url.Parse(sourceURL)
	if err != nil || !pageURL.IsAbs() {
		return
	}

	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err != nil {
		return
	}

	if m.author == "" {
		m.author = collapse(article.Byline)
	}
	if m.publishDate == "" && article.PublishedTime != nil {
		m.publishDate = article.PublishedTime.Format(time.RFC3339)
	}
}

func firstMetaContent(tree dom.Tree, selectors []string) string {
	for _, selector := range selectors {
		n, ok := tree.First(selector)
		if !ok {
			continue
		}
		if content, _ := n.Attr("content"); strings.TrimSpace(content) != "" {
			return strings.TrimSpace(content)
		}
	}
	return ""
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
