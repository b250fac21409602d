// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/shopperspectrum/internal/api"
	"github.com/tomtom215/shopperspectrum/internal/artifacts"
	"github.com/tomtom215/shopperspectrum/internal/logging"
	"github.com/tomtom215/shopperspectrum/internal/spectrum"
	"github.com/tomtom215/shopperspectrum/internal/supervisor"
	"github.com/tomtom215/shopperspectrum/internal/supervisor/services"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve recommendations and segments over HTTP",
		Long: "Serve loads the artifacts (building them first when any is missing) and\n" +
			"starts the HTTP API under a supervisor tree. A running server picks up\n" +
			"newer builds written to the artifact store every artifacts.reload_interval.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg

	store, err := artifacts.Open(cfg.Artifacts)
	if err != nil {
		return fmt.Errorf("open artifacts: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Failed to close artifact store")
		}
	}()

	// A failed build stops the process instead of being retried by the tree.
	model, origin, err := spectrum.LoadOrBuild(ctx, store, spectrum.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	handler := api.NewHandler(cfg.Recommend, version)
	handler.SetModel(model, origin)

	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security)))
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	reloader := services.NewModelReloadService(spectrum.NewSource(store), handler, cfg.Artifacts.ReloadInterval)
	tree.AddModelService(reloader)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	logging.Info().
		Str("addr", server.Addr).
		Str("build_id", model.Info().BuildID).
		Str("origin", string(origin)).
		Msg("Starting supervisor tree")

	// ServeBackground delivers exactly one value and never closes the channel.
	if err := <-tree.ServeBackground(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport() //nolint:errcheck // report is best effort after shutdown
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().
		Int64("model_reloads", reloader.Reloads()).
		Int64("reload_failures", reloader.Failures()).
		Msg("Server stopped")
	return nil
}
