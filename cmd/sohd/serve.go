package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sohd/internal/config"
	"sohd/internal/httpapi"
	"sohd/internal/logging"
	"sohd/internal/predictor"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		addr         string
		artifactsDir string
		scalerFile   string
		modelFile    string
		swagger      bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the inference service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if f.Changed("addr") {
				cfg.Addr = addr
			}
			if f.Changed("artifacts-dir") {
				cfg.ArtifactsDir = artifactsDir
			}
			if f.Changed("scaler") {
				cfg.ScalerFile = scalerFile
			}
			if f.Changed("model") {
				cfg.ModelFile = modelFile
			}
			if f.Changed("swagger") {
				cfg.Swagger = swagger
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr, "addr", config.DefaultAddr, "HTTP listen address")
	f.StringVar(&artifactsDir, "artifacts-dir", config.DefaultArtifactsDir, "Directory holding the scaler and model files")
	f.StringVar(&scalerFile, "scaler", config.DefaultScalerFile, "Scaler file name or path")
	f.StringVar(&modelFile, "model", config.DefaultModelFile, "Model file name or path")
	f.BoolVar(&swagger, "swagger", false, "Serve API docs at /swagger/")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	log, closer := logging.New(cfg.Log, "api")
	defer closer.Close()

	scalerPath, err := cfg.ScalerPath()
	if err != nil {
		return err
	}
	modelPath, err := cfg.ModelPath()
	if err != nil {
		return err
	}
	svc := predictor.Load(scalerPath, modelPath, log)

	httpapi.SetLogger(log)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders)
	httpapi.SetSwaggerEnabled(cfg.Swagger)
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Bool("model_loaded", svc.Ready()).Msg("sohd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	log.Info().Msg("sohd stopped")
	return nil
}
