package ioformats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wasc-audit/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadWebsites(t *testing.T) {
	path := writeFile(t, "websites.csv", `# comment line
Design Gouv; https://design.numerique.gouv.fr/
Example;http://example.com
`)
	websites, err := ReadWebsites(path)
	require.NoError(t, err)
	assert.Equal(t, []models.Website{
		{Label: "Design Gouv", URL: "https://design.numerique.gouv.fr/"},
		{Label: "Example", URL: "http://example.com"},
	}, websites)
}

func TestReadWebsitesMissingFile(t *testing.T) {
	_, err := ReadWebsites("foo.csv")
	require.Error(t, err)
}

func TestReadWebsitesMalformedRow(t *testing.T) {
	path := writeFile(t, "websites.csv", "only-a-label\n")
	_, err := ReadWebsites(path)
	require.Error(t, err)
}

func TestReadCheckers(t *testing.T) {
	path := writeFile(t, "checkers.txt", `# default set
AccessChecker
LangChecker

DoctypeChecker
`)
	names, err := ReadCheckers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"AccessChecker", "LangChecker", "DoctypeChecker"}, names)
}

func TestReadCheckersMissingFile(t *testing.T) {
	_, err := ReadCheckers("foo.txt")
	require.Error(t, err)
}

func TestReadCriteria(t *testing.T) {
	path := writeFile(t, "criteria.yaml", `Accessibilité:
  - AccessChecker
  - AccessLinkChecker
Mentions:
  - LegalChecker
`)
	config, err := ReadCriteria(path)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"Accessibilité": {"AccessChecker", "AccessLinkChecker"},
		"Mentions":      {"LegalChecker"},
	}, config)
}

func TestReadCriteriaMalformed(t *testing.T) {
	path := writeFile(t, "criteria.yaml", "just a scalar, not a mapping")
	_, err := ReadCriteria(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "criteria.yaml")
}
