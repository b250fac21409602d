// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/shopperspectrum/internal/artifacts"
	"github.com/tomtom215/shopperspectrum/internal/config"
	"github.com/tomtom215/shopperspectrum/internal/logging"
	"github.com/tomtom215/shopperspectrum/internal/spectrum"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	dataPath   string
	artifacts  string
	backend    string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "shopperspectrum",
		Short: "Retail product recommendations and customer segmentation",
		Long: "Shopper Spectrum builds an item-item similarity table and RFM customer\n" +
			"segments from a retail transaction log, persists them as artifacts and\n" +
			"answers recommendation and segment queries from the CLI or over HTTP.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: CONFIG_PATH or ./config.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: json or console")
	flags.StringVar(&a.dataPath, "data", "", "transaction log (CSV or Parquet)")
	flags.StringVar(&a.artifacts, "artifacts", "", "artifact directory")
	flags.StringVar(&a.backend, "backend", "", "artifact backend: file or badger")

	root.AddCommand(
		newBuildCmd(a),
		newServeCmd(a),
		newRecommendCmd(a),
		newClassifyCmd(a),
		newSegmentsCmd(a),
	)
	return root
}

// setup loads configuration, applies flag overrides and configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadWithKoanf(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Data.Path = a.dataPath
	}
	if flags.Changed("artifacts") {
		cfg.Artifacts.Dir = a.artifacts
	}
	if flags.Changed("backend") {
		cfg.Artifacts.Backend = a.backend
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})

	a.cfg = cfg
	return nil
}

// loadModel opens the store and loads or builds the model.
func (a *app) loadModel(ctx context.Context) (*spectrum.Model, spectrum.BuildOrigin, error) {
	store, err := artifacts.Open(a.cfg.Artifacts)
	if err != nil {
		return nil, "", fmt.Errorf("open artifacts: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Failed to close artifact store")
		}
	}()
	return spectrum.LoadOrBuild(ctx, store, spectrum.OptionsFromConfig(a.cfg))
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
