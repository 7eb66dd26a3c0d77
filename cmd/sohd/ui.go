package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sohd/internal/collector"
	"sohd/internal/config"
	"sohd/internal/logging"
)

// collectorFlags are shared by the ui and predict commands.
type collectorFlags struct {
	serviceURL string
	timeout    time.Duration
}

func (c *collectorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.serviceURL, "service-url", config.DefaultServiceURL, "Base URL of the inference service")
	cmd.Flags().DurationVar(&c.timeout, "timeout", config.DefaultTimeoutSeconds*time.Second, "Per-request timeout")
}

// client builds the service client, letting changed flags override cfg.
func (c *collectorFlags) client(cmd *cobra.Command, cfg config.CollectorConfig) *collector.Client {
	url := cfg.ServiceURL
	if cmd.Flags().Changed("service-url") {
		url = c.serviceURL
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if cmd.Flags().Changed("timeout") && c.timeout > 0 {
		timeout = c.timeout
	}
	return collector.NewClient(url, timeout)
}

func newUICmd(root *rootOptions) *cobra.Command {
	var (
		addr string
		cf   collectorFlags
	)
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Run the operator web form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Collector.Addr = addr
			}
			log, closer := logging.New(cfg.Log, "collector")
			defer closer.Close()

			client := cf.client(cmd, cfg.Collector)
			srv := &http.Server{
				Addr:              cfg.Collector.Addr,
				Handler:           collector.NewUI(client, log),
				ReadHeaderTimeout: 10 * time.Second,
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				_ = srv.Shutdown(sctx)
			}()
			log.Info().Str("addr", cfg.Collector.Addr).Str("service_url", client.BaseURL()).Msg("collector listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", config.DefaultCollectorAddr, "HTTP listen address for the form")
	cf.register(cmd)
	return cmd
}
