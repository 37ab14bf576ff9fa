package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wasc-audit/internal/checker"
	"wasc-audit/internal/criterion"
	"wasc-audit/internal/fetch"
	"wasc-audit/internal/models"
)

func TestRunnerRun(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<!DOCTYPE html><html lang="fr"><body></body></html>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	exec, err := criterion.NewChecklist([]string{"LangChecker", "DoctypeChecker"}, checker.Builtin())
	require.NoError(t, err)

	runner := &Runner{
		Client:      fetch.NewClient(5 * time.Second),
		Exec:        exec,
		Concurrency: 2,
	}
	websites := []models.Website{
		{Label: "OK", URL: ts.URL + "/ok"},
		{Label: "Missing", URL: ts.URL + "/missing"},
		{Label: "Unreachable", URL: "http://127.0.0.1:1/"},
	}
	entries := runner.Run(context.Background(), websites)
	require.Len(t, entries, 3)

	// entries keep input order
	assert.Equal(t, "OK", entries[0].Label)
	assert.Equal(t, "Missing", entries[1].Label)
	assert.Equal(t, "Unreachable", entries[2].Label)

	assert.Empty(t, entries[0].Err)
	assert.Equal(t, map[string]any{"LangChecker": "fr", "DoctypeChecker": "html"}, entries[0].Results)
	require.NotNil(t, entries[0].Summary)
	assert.Equal(t, "conforme", entries[0].Summary.Label)

	// no checker runs against a missing document
	assert.NotEmpty(t, entries[1].Err)
	assert.Nil(t, entries[1].Results)
	assert.NotEmpty(t, entries[2].Err)
	assert.Nil(t, entries[2].Results)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		results map[string]any
		want    string
	}{
		{"all pass", map[string]any{"a": "fr", "b": 1}, "conforme"},
		{"some fail", map[string]any{"a": "fr", "b": checker.Fail}, "partiel"},
		{"all fail", map[string]any{"a": checker.Fail, "b": checker.Fail}, "non conforme"},
		{"nested criteria", map[string]any{
			"Langue":  map[string]any{"Lang": checker.Fail},
			"Doctype": map[string]any{"Doctype": "html"},
		}, "partiel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.results)
			assert.Equal(t, tt.want, s.Label)
		})
	}
}

func TestSummarizeReasons(t *testing.T) {
	s := Summarize(map[string]any{
		"Langue": map[string]any{"Lang": checker.Fail},
		"Autre":  "ok",
	})
	assert.Equal(t, map[string]string{"Langue / Lang": checker.Fail}, s.Reason)
}
