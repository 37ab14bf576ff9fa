package checker

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"wasc-audit/internal/fetch"
	"wasc-audit/internal/webpage"
)

// secondaryFetchTimeout bounds the network calls some checkers perform on
// top of the already-fetched page (accessibility statement page, legal
// notice probe).
const secondaryFetchTimeout = time.Second

var (
	// "Accessibilité : totalement conforme", tolerating a non-breaking
	// space around the colon. Word order is significant: "conforme
	// partiellement" must not match.
	accessMentionRe = regexp.MustCompile(`(?i)accessibilité[ \x{00a0}]:[ \x{00a0}](non|partiellement|totalement)[ \x{00a0}]conforme`)
	declarationRe   = regexp.MustCompile(`(?i)déclaration d[’']accessibilité`)
	testResultsRe   = regexp.MustCompile(`(?i)résultats des tests`)
	legalMentionRe  = regexp.MustCompile(`(?i)mentions? l[ée]gales?`)
	contactHrefRe   = regexp.MustCompile(`(?i)(contact|ecrire)`)
)

// headNbChecker counts <head> elements. Zero is a valid count, not a
// failure, though the html parser synthesizes a missing <head>, so parsed
// documents always count at least one.
type headNbChecker struct{ base }

func NewHeadNbChecker() Checker {
	return &headNbChecker{base{"HeadNbChecker", "Nombre de <head>"}}
}

func (c *headNbChecker) Execute(_ context.Context, doc *webpage.Document, _ string) Result {
	return len(doc.ElementsByTag("head"))
}

// headLvlChecker reports the nesting depth of every <head> element. A
// well-formed page yields [1].
type headLvlChecker struct{ base }

func NewHeadLvlChecker() Checker {
	return &headLvlChecker{base{"HeadLvlChecker", "Profondeur des <head>"}}
}

func (c *headLvlChecker) Execute(_ context.Context, doc *webpage.Document, _ string) Result {
	heads := doc.ElementsByTag("head")
	depths := make([]int, 0, len(heads))
	for _, h := range heads {
		depths = append(depths, webpage.ElementDepth(h))
	}
	return depths
}

// doctypeChecker validates that a doctype declaration exists, declares
// exactly "html" and precedes the root <html> element.
type doctypeChecker struct{ base }

func NewDoctypeChecker() Checker {
	return &doctypeChecker{base{"DoctypeChecker", "Doctype"}}
}

func (c *doctypeChecker) Execute(_ context.Context, doc *webpage.Document, _ string) Result {
	value, precedesRoot, ok := doc.Doctype()
	if !ok || !precedesRoot || !strings.EqualFold(value, "html") {
		return Fail
	}
	return "html"
}

// langChecker reads the lang attribute of the root <html> element.
type langChecker struct{ base }

func NewLangChecker() Checker {
	return &langChecker{base{"LangChecker", "Lang"}}
}

func (c *langChecker) Execute(_ context.Context, doc *webpage.Document, _ string) Result {
	lang := strings.TrimSpace(doc.Selection("html").AttrOr("lang", ""))
	if lang == "" {
		return Fail
	}
	return lang
}

// headerChecker requires exactly one <header> element.
type headerChecker struct{ base }

func NewHeaderChecker() Checker {
	return &headerChecker{base{"HeaderChecker", "En-tête"}}
}

func (c *headerChecker) Execute(_ context.Context, doc *webpage.Document, _ string) Result {
	if doc.Selection("header").Length() == 1 {
		return Present
	}
	return Fail
}

// footerChecker requires exactly one <footer> element.
type footerChecker struct{ base }

func NewFooterChecker() Checker {
	return &footerChecker{base{"FooterChecker", "Pied de page"}}
}

func (c *footerChecker) Execute(_ context.Context, doc *webpage.Document, _ string) Result {
	if doc.Selection("footer").Length() == 1 {
		return Present
	}
	return Fail
}

// accessChecker detects the "Accessibilité : {non|partiellement|totalement}
// conforme" compliance statement and returns the declared level as written
// on the page.
type accessChecker struct{ base }

func NewAccessChecker() Checker {
	return &accessChecker{base{"AccessChecker", "Mention accessibilité"}}
}

func (c *accessChecker) Execute(_ context.Context, doc *webpage.Document, _ string) Result {
	n := doc.FindText(accessMentionRe)
	if n == nil {
		return Fail
	}
	_, after, _ := strings.Cut(accessMentionRe.FindString(n.Data), ":")
	return strings.Trim(after, " \u00a0")
}

// accessLinkChecker locates a hyperlink to the accessibility statement.
// Three tiers, first hit wins: the compliance mention itself is a link, a
// "Déclaration d'accessibilité" text is a link, or the page carries a
// root-level /accessibilite (or /accessibility) anchor.
type accessLinkChecker struct{ base }

func NewAccessLinkChecker() Checker {
	return &accessLinkChecker{base{"AccessLinkChecker", "Lien accessibilité"}}
}

func (c *accessLinkChecker) Execute(_ context.Context, doc *webpage.Document, rootURL string) Result {
	for _, re := range []*regexp.Regexp{accessMentionRe, declarationRe} {
		if n := doc.FindText(re); n != nil {
			if href, ok := webpage.EnclosingLink(n); ok {
				return ResolveURL(href, rootURL)
			}
		}
	}
	statementURLs := []string{
		ResolveURL("accessibilite", rootURL),
		ResolveURL("accessibility", rootURL),
	}
	result := Result(Fail)
	doc.Selection("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		resolved := ResolveURL(a.AttrOr("href", ""), rootURL)
		for _, u := range statementURLs {
			if resolved == u {
				result = resolved
				return false
			}
		}
		return true
	})
	return result
}

// accessRateChecker scrapes the compliance percentage from the linked
// accessibility statement page. This is the one checker with network I/O of
// its own; every fetch failure degrades to Fail.
type accessRateChecker struct {
	base
	link   Checker
	client Fetcher
}

func NewAccessRateChecker() Checker {
	return &accessRateChecker{
		base:   base{"AccessRateChecker", "Taux d'accessibilité"},
		link:   NewAccessLinkChecker(),
		client: fetch.NewClient(secondaryFetchTimeout),
	}
}

func (c *accessRateChecker) Execute(ctx context.Context, doc *webpage.Document, rootURL string) Result {
	link := c.link.Execute(ctx, doc, rootURL)
	if link == Result(Fail) {
		return Fail
	}
	statement, err := c.client.GetPage(ctx, link.(string))
	if err != nil {
		return Fail
	}
	anchor := statement.FindText(testResultsRe)
	if anchor == nil {
		return Fail
	}
	// The percentage usually sits a few blocks below the "Résultats des
	// tests" heading. Widen the search one ancestor at a time, scanning
	// the sibling subtrees at each level, for at most 10 hops.
	tag := anchor.Parent
	for hops := 0; hops < 10 && tag != nil; hops++ {
		for sib := tag.NextSibling; sib != nil; sib = sib.NextSibling {
			if sib.Type != html.ElementNode {
				continue
			}
			if rate, ok := findRate(sib); ok {
				return rate
			}
		}
		tag = tag.Parent
	}
	return Fail
}

// findRate locates a "%"-bearing text in the subtree of n and extracts the
// trailing numeric run immediately preceding the "%" sign, e.g.
// "conforme à 98,35 % des critères" yields "98,35%".
func findRate(n *html.Node) (string, bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			if rate, ok := findRate(c); ok {
				return rate, true
			}
			continue
		}
		if c.Type != html.TextNode || !strings.ContainsRune(c.Data, '%') {
			continue
		}
		runes := []rune(c.Data)
		idx := 0
		for i, r := range runes {
			if r == '%' {
				idx = i
				break
			}
		}
		count := 0
		for j := idx - 1; j >= 0 && j >= idx-9; j-- {
			if !strings.ContainsRune("0123456789 ,. ", runes[j]) {
				break
			}
			count++
		}
		if count == 0 {
			continue
		}
		rate := string(runes[idx-count : idx+1])
		rate = strings.ReplaceAll(rate, " ", "")
		rate = strings.ReplaceAll(rate, " ", "")
		return rate, true
	}
	return "", false
}

// legalChecker locates a "Mentions légales" link. When no matching text
// yields a link, it probes the conventional root/mentions-legales URL and
// returns it only if the probe succeeds.
type legalChecker struct {
	base
	client Fetcher
}

func NewLegalChecker() Checker {
	return &legalChecker{
		base:   base{"LegalChecker", "Mentions légales"},
		client: fetch.NewClient(secondaryFetchTimeout),
	}
}

func (c *legalChecker) Execute(ctx context.Context, doc *webpage.Document, rootURL string) Result {
	for _, n := range doc.FindAllText(legalMentionRe) {
		if href, ok := webpage.EnclosingLink(n); ok {
			return ResolveURL(href, rootURL)
		}
	}
	probe := ResolveURL("mentions-legales", rootURL)
	if c.client.Exists(ctx, probe) {
		return probe
	}
	return Fail
}

// contactLinkChecker returns the first anchor whose href looks like a
// contact page.
type contactLinkChecker struct{ base }

func NewContactLinkChecker() Checker {
	return &contactLinkChecker{base{"ContactLinkChecker", "Lien contact"}}
}

func (c *contactLinkChecker) Execute(_ context.Context, doc *webpage.Document, rootURL string) Result {
	result := Result(Fail)
	doc.Selection("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := a.AttrOr("href", "")
		if contactHrefRe.MatchString(href) {
			result = ResolveURL(href, rootURL)
			return false
		}
		return true
	})
	return result
}
