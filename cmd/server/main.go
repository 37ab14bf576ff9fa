package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wasc-audit/internal/checker"
	"wasc-audit/internal/criterion"
	"wasc-audit/internal/fetch"
	"wasc-audit/internal/models"
	"wasc-audit/internal/report"
	"wasc-audit/pkg/logger"
)

type auditReq struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type batchReq struct {
	Websites []auditReq `json:"websites"`
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	concurrency := flag.Int("concurrency", 8, "batch audit concurrency")
	flag.Parse()

	log := logger.New(false)

	exec, err := criterion.NewChecklist(checker.DefaultCheckers(), checker.Builtin())
	if err != nil {
		log.Error("build checklist", "err", err)
		os.Exit(1)
	}
	runner := &report.Runner{
		Client:      fetch.NewClient(15 * time.Second),
		Exec:        exec,
		Concurrency: *concurrency,
		Log:         log,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// POST /audit  { "label": "Example", "url": "https://..." }
	mux.HandleFunc("/audit", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		var req auditReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		entries := runner.Run(ctx, []models.Website{{Label: req.Label, URL: req.URL}})
		entry := entries[0]
		if entry.Err != "" {
			writeJSON(w, http.StatusBadGateway, entry)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	})

	// POST /audit/batch  { "websites": [{"label": "...", "url": "..."}] }
	mux.HandleFunc("/audit/batch", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		var req batchReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Websites) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
		defer cancel()

		websites := make([]models.Website, len(req.Websites))
		for i, ws := range req.Websites {
			websites[i] = models.Website{Label: ws.Label, URL: ws.URL}
		}
		writeJSON(w, http.StatusOK, runner.Run(ctx, websites))
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      logRequest(log, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", *addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func logRequest(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}
