package models

// Website is one (label, URL) input pair from the website list.
type Website struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Entry is the audit outcome for one website: a result mapping keyed by
// report column, or an error descriptor when the page could not be fetched.
// Entries are populated once by the runner and never mutated afterwards.
type Entry struct {
	Label   string         `json:"label"`
	URL     string         `json:"url"`
	Err     string         `json:"erreur,omitempty"`
	Results map[string]any `json:"results,omitempty"`
	Summary *Summary       `json:"resume,omitempty"`
}

// Summary is a coarse conformance verdict derived from an entry's results.
type Summary struct {
	Label  string            `json:"label"`
	Reason map[string]string `json:"reason,omitempty"`
}
