// Package extractor turns an arbitrary HTML page into the bounded excerpt
// that is sent to the model: title, main header, body text and metadata.
//
// Every stage is a ranked list of selectors where the first match wins, so
// the result is deterministic for a given document.
package extractor

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/clickbait-detector/models"
	"github.com/dtnitsch/clickbait-detector/pkg/dom"
)

// Extract parses html and returns its normalized content. It only fails when
// the markup cannot be parsed; a page without any title source yields an
// empty Title, which callers treat as an extraction failure.
func Extract(html, sourceURL string) (models.ExtractedContent, error) {
	tree, err := dom.ParseString(html)
	if err != nil {
		return models.ExtractedContent{}, err
	}

	content := models.ExtractedContent{
		Title:  resolveTitle(tree),
		Header: resolveHeader(tree),
	}

	// Metadata is read before noise removal so bylines inside <header> survive.
	meta := extractMetadata(tree, html, sourceURL)
	content.Description = meta.description
	content.Keywords = meta.keywords
	content.Author = meta.author
	content.PublishDate = meta.publishDate

	removeNoise(tree)
	content.Content = Normalize(resolveBody(tree))

	return content, nil
}

func resolveTitle(tree dom.Tree) string {
	for _, src := range titleSources {
		n, ok := tree.First(src.selector)
		if !ok {
			continue
		}

		var value string
		if src.attr != "" {
			value, _ = n.Attr(src.attr)
			value = strings.TrimSpace(value)
		} else {
			value = n.TrimmedText()
		}

		if value != "" {
			return value
		}
	}
	return ""
}

func resolveHeader(tree dom.Tree) string {
	for _, selector := range headerSelectors {
		if n, ok := tree.First(selector); ok {
			return n.TrimmedText()
		}
	}
	return ""
}

func noiseSelector() string {
	parts := []string{noiseSelectors}
	for _, p := range noisePatterns {
		parts = append(parts, `[class*="`+p+`"]`, `[id*="`+p+`"]`)
	}
	return strings.Join(parts, ", ")
}

func removeNoise(tree dom.Tree) int {
	return tree.Remove(noiseSelector())
}

// resolveBody returns the raw body text: the first ranked container with
// enough text, or the largest paragraph/div blocks when none qualifies.
func resolveBody(tree dom.Tree) string {
	for _, selector := range bodySelectors {
		n, ok := tree.First(selector)
		if !ok {
			continue
		}
		text := n.TrimmedText()
		if utf8.RuneCountInString(text) > minContainerChars {
			return text
		}
	}
	return largestBlocks(tree)
}

func largestBlocks(tree dom.Tree) string {
	type block struct {
		text   string
		length int
	}

	var blocks []block
	for _, n := range tree.All("p, div") {
		text := n.TrimmedText()
		length := utf8.RuneCountInString(text)
		if length > minBlockChars {
			blocks = append(blocks, block{text: text, length: length})
		}
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].length > blocks[j].length
	})

	if len(blocks) > maxFallbackBlocks {
		blocks = blocks[:maxFallbackBlocks]
	}

	texts := make([]string, len(blocks))
	for i, b := range blocks {
		texts[i] = b.text
	}
	return strings.Join(texts, " ")
}
