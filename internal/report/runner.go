// Package report drives the fetch-and-aggregate pass over a website list
// and renders the collected results.
package report

import (
	"context"
	"log/slog"

	"wasc-audit/internal/criterion"
	"wasc-audit/internal/fetch"
	"wasc-audit/internal/models"
)

// Runner audits each website of a list: fetch, parse, run the aggregator.
// A fetch failure is recorded as an error descriptor on the entry and no
// checker runs for that site; the run always yields one entry per website.
type Runner struct {
	Client      *fetch.Client
	Exec        criterion.Executor
	Concurrency int
	Log         *slog.Logger
}

// Run audits every website with bounded concurrency. Entries come back in
// input order.
func (r *Runner) Run(ctx context.Context, websites []models.Website) []models.Entry {
	concurrency := r.Concurrency
	if concurrency < 1 {
		concurrency = 8
	}

	entries := make([]models.Entry, len(websites))

	sem := make(chan struct{}, concurrency)
	done := make(chan int, len(websites))

	for i, ws := range websites {
		i, ws := i, ws
		sem <- struct{}{} // acquire
		go func() {
			defer func() { <-sem; done <- i }()
			entries[i] = r.audit(ctx, ws)
		}()
	}
	for range websites {
		<-done
	}
	return entries
}

func (r *Runner) audit(ctx context.Context, ws models.Website) models.Entry {
	entry := models.Entry{Label: ws.Label, URL: ws.URL}
	doc, err := r.Client.GetPage(ctx, ws.URL)
	if err != nil {
		if r.Log != nil {
			r.Log.Warn("download failed", "label", ws.Label, "url", ws.URL, "err", err)
		}
		entry.Err = err.Error()
		return entry
	}
	entry.Results = r.Exec.Execute(ctx, doc, ws.URL)
	entry.Summary = Summarize(entry.Results)
	if r.Log != nil {
		r.Log.Info("audited", "label", ws.Label, "url", ws.URL, "resume", entry.Summary.Label)
	}
	return entry
}
