// Package criterion groups checkers into the units reported on: a named
// criterion, a flat checklist, or a whole criteria set loaded from
// configuration.
package criterion

import (
	"context"
	"fmt"
	"sort"

	"wasc-audit/internal/checker"
	"wasc-audit/internal/webpage"
)

// Executor runs a battery of checkers against one parsed page and returns
// results keyed by column name. Columns is the stable report column order.
type Executor interface {
	Columns() []string
	Execute(ctx context.Context, doc *webpage.Document, rootURL string) map[string]checker.Result
}

// Criterion is a named, ordered group of checkers. Results are keyed by
// checker description.
type Criterion struct {
	name     string
	checkers []checker.Checker
}

// New resolves every checker name through the registry up front: an empty
// list or an unknown name is a configuration error.
func New(name string, checkerNames []string, reg *checker.Registry) (*Criterion, error) {
	if len(checkerNames) == 0 {
		return nil, fmt.Errorf("criterion %q: no checker given in checker list", name)
	}
	checkers, err := resolve(checkerNames, reg)
	if err != nil {
		return nil, fmt.Errorf("criterion %q: %w", name, err)
	}
	return &Criterion{name: name, checkers: checkers}, nil
}

func (c *Criterion) Name() string { return c.name }

func (c *Criterion) Columns() []string {
	cols := make([]string, len(c.checkers))
	for i, ck := range c.checkers {
		cols[i] = ck.Description()
	}
	return cols
}

func (c *Criterion) Execute(ctx context.Context, doc *webpage.Document, rootURL string) map[string]checker.Result {
	results := make(map[string]checker.Result, len(c.checkers))
	for _, ck := range c.checkers {
		results[ck.Description()] = ck.Execute(ctx, doc, rootURL)
	}
	return results
}

// Checklist is the flat aggregator used when no criteria grouping is
// requested. Results are keyed by checker name.
type Checklist struct {
	checkers []checker.Checker
}

func NewChecklist(checkerNames []string, reg *checker.Registry) (*Checklist, error) {
	if len(checkerNames) == 0 {
		return nil, fmt.Errorf("checklist: no checker given in checker list")
	}
	checkers, err := resolve(checkerNames, reg)
	if err != nil {
		return nil, err
	}
	return &Checklist{checkers: checkers}, nil
}

func (c *Checklist) Columns() []string {
	cols := make([]string, len(c.checkers))
	for i, ck := range c.checkers {
		cols[i] = ck.Name()
	}
	return cols
}

func (c *Checklist) Execute(ctx context.Context, doc *webpage.Document, rootURL string) map[string]checker.Result {
	results := make(map[string]checker.Result, len(c.checkers))
	for _, ck := range c.checkers {
		results[ck.Name()] = ck.Execute(ctx, doc, rootURL)
	}
	return results
}

// Set runs several criteria against the same page, nesting each criterion's
// result map under the criterion name. Criteria run in sorted name order so
// reports stay deterministic across runs.
type Set struct {
	criteria []*Criterion
}

func NewSet(config map[string][]string, reg *checker.Registry) (*Set, error) {
	if len(config) == 0 {
		return nil, fmt.Errorf("criteria set: no criterion given")
	}
	names := make([]string, 0, len(config))
	for name := range config {
		names = append(names, name)
	}
	sort.Strings(names)

	criteria := make([]*Criterion, 0, len(names))
	for _, name := range names {
		crit, err := New(name, config[name], reg)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, crit)
	}
	return &Set{criteria: criteria}, nil
}

func (s *Set) Columns() []string {
	cols := make([]string, len(s.criteria))
	for i, crit := range s.criteria {
		cols[i] = crit.Name()
	}
	return cols
}

func (s *Set) Execute(ctx context.Context, doc *webpage.Document, rootURL string) map[string]checker.Result {
	results := make(map[string]checker.Result, len(s.criteria))
	for _, crit := range s.criteria {
		results[crit.Name()] = crit.Execute(ctx, doc, rootURL)
	}
	return results
}

func resolve(names []string, reg *checker.Registry) ([]checker.Checker, error) {
	checkers := make([]checker.Checker, 0, len(names))
	for _, name := range names {
		ck, err := reg.Create(name)
		if err != nil {
			return nil, err
		}
		checkers = append(checkers, ck)
	}
	return checkers, nil
}
