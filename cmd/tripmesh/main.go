// Command tripmesh runs the travel-planning workflow from the command line.
//
// The plan subcommand reads a JSON request (from a file or stdin), drives the
// coordinator to completion and prints the RunResult as JSON. An optional
// metrics listener exposes /metrics and /healthz while the run is in flight.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/hupe1980/tripmesh"
	"github.com/hupe1980/tripmesh/config"
	"github.com/hupe1980/tripmesh/coordinator"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/travel"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tripmesh",
		Short:         "Multi-stage travel planning workflow coordinator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newPlanCmd())

	return cmd
}

func newPlanCmd() *cobra.Command {
	var requestPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run the travel planning pipeline for one request",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			request, err := readRequest(requestPath)
			if err != nil {
				return fmt.Errorf("read request: %w", err)
			}

			logger := logging.NewSlogLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, false)
			logger.Info("starting tripmesh plan")

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if cfg.MetricsAddr != "" {
				go serveMetrics(cfg.MetricsAddr, logger)
			}

			root, err := travel.NewWorkflow(func(o *travel.Options) {
				o.MaxIterations = cfg.LoopMaxIterations
				o.WeatherAPIURL = cfg.WeatherAPIURL
				o.WeatherAPIKey = cfg.WeatherAPIKey
				o.TimeAPIURL = cfg.TimeAPIURL
			})
			if err != nil {
				return err
			}

			mesh, err := tripmesh.New(root, func(o *tripmesh.Options) {
				o.Logger = logger
				o.Config = coordinator.Config{
					MaxRetries:        cfg.MaxRetries,
					RetryDelay:        cfg.RetryDelay,
					OverallTimeout:    cfg.OverallTimeout,
					TerminalOutputKey: travel.StateApprovalStatus,
				}
			})
			if err != nil {
				return err
			}

			result := mesh.Plan(ctx, request)

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if !result.IsSuccess() {
				return fmt.Errorf("run finished with status %s", result.Status)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&requestPath, "request", "r", "-", "Path to the JSON trip request ('-' for stdin)")

	return cmd
}

func readRequest(path string) (map[string]any, error) {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var request map[string]any
	if err := json.Unmarshal(data, &request); err != nil {
		return nil, err
	}

	return request, nil
}

func serveMetrics(addr string, logger logging.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info("metrics listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server error", "error", err)
	}
}
