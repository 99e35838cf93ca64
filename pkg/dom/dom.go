// Package dom exposes the small slice of DOM querying the extractor needs,
// so extraction logic does not depend on a particular HTML library.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Node is a single element in a Tree.
type Node interface {
	// Text returns the concatenated text of the node and its descendants.
	Text() string
	// TrimmedText is Text with surrounding whitespace removed.
	TrimmedText() string
	Attr(name string) (string, bool)
}

// Tree is a queryable, mutable HTML document.
type Tree interface {
	// First returns the first node matching selector in document order.
	First(selector string) (Node, bool)
	// All returns every node matching selector in document order.
	All(selector string) []Node
	// Remove detaches every subtree matching selector and reports how many
	// nodes were removed.
	Remove(selector string) int
}

type node struct {
	sel *goquery.Selection
}

func (n node) Text() string {
	return n.sel.Text()
}

func (n node) TrimmedText() string {
	return strings.TrimSpace(n.sel.Text())
}

func (n node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

type tree struct {
	doc *goquery.Document
}

// Parse builds a Tree from HTML markup.
func Parse(r io.Reader) (Tree, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &tree{doc: doc}, nil
}

// ParseString is Parse for an in-memory document.
func ParseString(html string) (Tree, error) {
	return Parse(strings.NewReader(html))
}

func (t *tree) First(selector string) (Node, bool) {
	sel := t.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return node{sel: sel}, true
}

func (t *tree) All(selector string) []Node {
	found := t.doc.Find(selector)
	nodes := make([]Node, 0, found.Length())
	found.Each(func(i int, s *goquery.Selection) {
		nodes = append(nodes, node{sel: s})
	})
	return nodes
}

func (t *tree) Remove(selector string) int {
	found := t.doc.Find(selector)
	n := found.Length()
	found.Remove()
	return n
}
