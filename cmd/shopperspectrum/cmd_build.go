// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package main

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/shopperspectrum/internal/spectrum"
)

type buildReport struct {
	Origin spectrum.BuildOrigin `json:"origin"`
	spectrum.BuildInfo
}

func newBuildCmd(a *app) *cobra.Command {
	var rebuild bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build and persist the five model artifacts",
		Long: "Build reads the transaction log, computes the product similarity table and\n" +
			"the customer segment model, and writes all five artifacts. When every\n" +
			"artifact is already present the build is skipped unless --rebuild is set.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rebuild {
				a.cfg.Artifacts.Rebuild = true
			}
			m, origin, err := a.loadModel(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), buildReport{Origin: origin, BuildInfo: m.Info()})
		},
	}
	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "build even when all artifacts are present")
	return cmd
}
