package webpage

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Document is a parsed web page. It exposes both a goquery selection API for
// selector-based queries and the underlying x/net/html node tree for the
// traversals goquery cannot express (text-node search, ancestor walks,
// doctype inspection).
type Document struct {
	root *html.Node
	gq   *goquery.Document
}

// Parse decodes r to UTF-8 (honoring contentType and meta hints) and parses
// it into a Document.
func Parse(r io.Reader, contentType string) (*Document, error) {
	buf := new(bytes.Buffer)
	_, _ = io.Copy(buf, r)
	return ParseBytes(buf.Bytes(), contentType)
}

// ParseBytes is Parse over an in-memory page.
func ParseBytes(data []byte, contentType string) (*Document, error) {
	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// fallback: if already utf-8, continue
		if !utf8.Valid(data) {
			return nil, err
		}
		utf8data = data
	}

	root, err := html.Parse(bytes.NewReader(utf8data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root, gq: goquery.NewDocumentFromNode(root)}, nil
}

// Root returns the document node of the underlying tree.
func (d *Document) Root() *html.Node {
	return d.root
}

// Selection runs a goquery selector against the whole document.
func (d *Document) Selection(selector string) *goquery.Selection {
	return d.gq.Find(selector)
}

// ElementsByTag returns every element with the given tag name, in document
// order.
func (d *Document) ElementsByTag(name string) []*html.Node {
	var out []*html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, name) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindText returns the first text node whose content matches re, or nil.
func (d *Document) FindText(re *regexp.Regexp) *html.Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.TextNode && re.MatchString(n.Data) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAllText returns every text node whose content matches re, in document
// order.
func (d *Document) FindAllText(re *regexp.Regexp) []*html.Node {
	var out []*html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.TextNode && re.MatchString(n.Data) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Doctype reports the declared doctype value and whether the declaration
// precedes the root <html> element among the document's top-level children.
// ok is false when no doctype node exists at all.
func (d *Document) Doctype() (value string, precedesRoot bool, ok bool) {
	doctypeIdx, htmlIdx := -1, -1
	i := 0
	for n := d.root.FirstChild; n != nil; n = n.NextSibling {
		switch {
		case n.Type == html.DoctypeNode && doctypeIdx == -1:
			doctypeIdx = i
			value = n.Data
		case n.Type == html.ElementNode && strings.EqualFold(n.Data, "html") && htmlIdx == -1:
			htmlIdx = i
		}
		i++
	}
	if doctypeIdx == -1 {
		return "", false, false
	}
	return value, htmlIdx == -1 || doctypeIdx < htmlIdx, true
}

// Attr reads an attribute from an element node.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// ElementDepth counts the element ancestors of n. A <head> directly under
// <html> has depth 1.
func ElementDepth(n *html.Node) int {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			depth++
		}
	}
	return depth
}

// walk visits n and its subtree in document order; fn returning false stops
// the traversal.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
