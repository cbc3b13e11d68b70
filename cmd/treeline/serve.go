package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/treeline"
	"github.com/aretw0/treeline/internal/logging"
	"github.com/aretw0/treeline/pkg/adapters/memory"
	redisstore "github.com/aretw0/treeline/pkg/adapters/redis"
	"github.com/aretw0/treeline/pkg/domain"
	"github.com/aretw0/treeline/pkg/observability"
	"github.com/aretw0/treeline/pkg/ports"
	"github.com/aretw0/treeline/pkg/schema"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the verification HTTP server",
	Long: `Starts an HTTP server that runs a verification session for every POSTed
tree document and exposes aggregate outcome metrics for Prometheus.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		verbose, _ := cmd.Flags().GetBool("verbose")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")

		logger := logging.New(slog.LevelInfo)
		if verbose {
			logger = logging.New(slog.LevelDebug)
		}

		registry := prometheus.NewRegistry()
		metrics := observability.NewMetrics(registry)

		// Reports outlive the process only when a Redis backend is given;
		// otherwise they live as long as the server does.
		var store ports.ReportStore = memory.NewStore()
		if redisAddr != "" {
			rs := redisstore.New(redisAddr, "", 0)
			defer rs.Close()
			store = rs
			logger.Info("persisting reports to redis", "addr", redisAddr)
		}

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: newRouter(logger, metrics, registry, store),
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting verification server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			logger.Error("server error", "error", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil {
					logger.Error("error closing server", "error", err)
				}
			}
		}
	},
}

// newRouter wires the verification endpoint, report retrieval, and the
// metrics exposition.
func newRouter(logger *slog.Logger, metrics *observability.Metrics, registry *prometheus.Registry, store ports.ReportStore) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "version": treeline.Version})
	})

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Post("/verify", func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		doc, err := schema.Parse(body)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid tree document: %v", err), http.StatusBadRequest)
			logger.Warn("rejected tree document", "error", err)
			return
		}
		tree, err := doc.Tree()
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid tree document: %v", err), http.StatusBadRequest)
			return
		}

		v, err := treeline.New(tree,
			treeline.WithName(doc.Name),
			treeline.WithLogger(logger),
			treeline.WithObserver(metrics),
		)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		report, err := v.Run(req.Context())
		if err != nil {
			http.Error(w, fmt.Sprintf("verification failed: %v", err), http.StatusInternalServerError)
			logger.Error("verification session failed", "error", err)
			return
		}

		logger.Info("verification session complete",
			"tree", doc.Name,
			"passed", report.Passed(),
			"mismatches", len(report.Mismatches))

		id := reportID(doc.Name)
		if err := store.Save(req.Context(), id, report); err != nil {
			// Persistence is best-effort; the caller still gets the report.
			logger.Error("report save failed", "id", id, "error", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Location", "/reports/"+id)
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.Error("report encode failed", "error", err)
		}
	})

	r.Get("/reports", func(w http.ResponseWriter, req *http.Request) {
		ids, err := store.List(req.Context())
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to list reports: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string][]string{"reports": ids})
	})

	r.Get("/reports/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")
		report, err := store.Load(req.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrReportNotFound) {
				http.Error(w, "report not found", http.StatusNotFound)
				return
			}
			http.Error(w, fmt.Sprintf("failed to load report: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	})

	return r
}

// reportID derives a store key for a session: the tree label plus the
// session's wall-clock instant.
func reportID(name string) string {
	if name == "" {
		name = "tree"
	}
	return fmt.Sprintf("%s-%d", name, time.Now().UnixNano())
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis-addr", "", "Redis address for report persistence (default: in-memory)")
}
