package checker

import (
	"context"

	"wasc-audit/internal/webpage"
)

// Result is the outcome of one checker execution. Depending on the checker
// it is a string, an int, a []int or an absolute URL string. Absence of the
// checked pattern is not an error: it is the Fail sentinel.
type Result = any

const (
	// Fail is the canonical "not found / non conformant" result.
	Fail = "échec"
	// Present marks a structural element that exists exactly once.
	Present = "présent"
)

// Checker is a single named heuristic test against a parsed page. Checkers
// hold no per-call state and are safe to reuse across documents and
// goroutines.
type Checker interface {
	// Name is the short machine key used in config files.
	Name() string
	// Description is the human label used in report output.
	Description() string
	// Execute runs the heuristic against one parsed page. rootURL is the
	// absolute URL of the page, used to resolve relative links.
	Execute(ctx context.Context, doc *webpage.Document, rootURL string) Result
}

// Fetcher is the contract the two network-performing checkers
// (AccessRateChecker, LegalChecker) need from an HTTP client.
type Fetcher interface {
	GetPage(ctx context.Context, url string) (*webpage.Document, error)
	Exists(ctx context.Context, url string) bool
}

type base struct {
	name        string
	description string
}

func (b base) Name() string        { return b.name }
func (b base) Description() string { return b.description }
