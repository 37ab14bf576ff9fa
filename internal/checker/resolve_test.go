package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		root      string
		want      string
	}{
		{"absolute unchanged", "https://www.example.com/fr/test", "https://other.org", "https://www.example.com/fr/test"},
		{"both empty", "", "", ""},
		{"empty candidate", "", "https://www.example.com/", "https://www.example.com"},
		{"simple concat", "misc/accessibilite", "https://www.example.com", "https://www.example.com/misc/accessibilite"},
		{"leading slash", "/misc/accessibilite/", "https://www.example.com/", "https://www.example.com/misc/accessibilite"},
		{"overlap with slashes", "/fr/test/", "https://www.example.com/fr/", "https://www.example.com/fr/test"},
		{"overlap without slashes", "fr/test", "https://www.example.com/fr", "https://www.example.com/fr/test"},
		{"overlap single segment", "fr", "https://www.example.com/fr", "https://www.example.com/fr"},
		{"no overlap", "en/test", "https://www.example.com/fr", "https://www.example.com/fr/en/test"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveURL(tt.candidate, tt.root))
		})
	}
}

func TestResolveURLIdempotent(t *testing.T) {
	root := "https://www.example.com/fr"
	resolved := ResolveURL("/fr/test/", root)
	assert.Equal(t, resolved, ResolveURL(resolved, root))
}
