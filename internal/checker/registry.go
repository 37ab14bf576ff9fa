package checker

import (
	"fmt"
	"sort"
)

// Constructor builds a fresh Checker instance.
type Constructor func() Checker

// Registry maps checker names to constructors. It is populated once at
// process start and read-only afterwards, so lookups need no locking.
type Registry struct {
	ctors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register records a constructor under name. Registering the same name twice
// overwrites the previous entry.
func (r *Registry) Register(name string, ctor Constructor) {
	r.ctors[name] = ctor
}

// Create instantiates the checker registered under name. An unknown name is
// a configuration error, not a silent skip.
func (r *Registry) Create(name string) (Checker, error) {
	ctor, ok := r.ctors[name]
	if !ok {
		return nil, fmt.Errorf("unknown checker %q", name)
	}
	return ctor(), nil
}

// IsRegistered reports whether name is a known checker.
func (r *Registry) IsRegistered(name string) bool {
	_, ok := r.ctors[name]
	return ok
}

// Available returns all registered checker names, sorted.
func (r *Registry) Available() []string {
	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns a registry populated with every built-in checker.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register("HeadNbChecker", NewHeadNbChecker)
	r.Register("HeadLvlChecker", NewHeadLvlChecker)
	r.Register("DoctypeChecker", NewDoctypeChecker)
	r.Register("LangChecker", NewLangChecker)
	r.Register("HeaderChecker", NewHeaderChecker)
	r.Register("FooterChecker", NewFooterChecker)
	r.Register("AccessChecker", NewAccessChecker)
	r.Register("AccessLinkChecker", NewAccessLinkChecker)
	r.Register("AccessRateChecker", NewAccessRateChecker)
	r.Register("LegalChecker", NewLegalChecker)
	r.Register("ContactLinkChecker", NewContactLinkChecker)
	return r
}

// DefaultCheckers is the checker set used when no checkers or criteria file
// is given on the command line.
func DefaultCheckers() []string {
	return []string{
		"AccessChecker", "AccessLinkChecker", "AccessRateChecker",
		"DoctypeChecker", "LangChecker", "LegalChecker",
		"ContactLinkChecker",
	}
}
