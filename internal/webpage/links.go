package webpage

import (
	"strings"

	"golang.org/x/net/html"
)

// EnclosingLink walks up from a matched node until it reaches an enclosing
// <a> element and returns its href. The walk stops at the root <html>
// element. A miss (no anchor, or an anchor without href) is a normal result,
// not an error.
func EnclosingLink(n *html.Node) (string, bool) {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type != html.ElementNode {
			continue
		}
		if strings.EqualFold(cur.Data, "a") {
			return Attr(cur, "href")
		}
		if strings.EqualFold(cur.Data, "html") {
			return "", false
		}
	}
	return "", false
}
