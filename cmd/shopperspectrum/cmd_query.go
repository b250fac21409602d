// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/shopperspectrum/internal/api"
	"github.com/tomtom215/shopperspectrum/internal/validation"
)

// errProductNotFound makes the process exit non-zero after the empty result
// has been printed.
var errProductNotFound = errors.New("product not found")

func validate(v interface{}) error {
	if verr := validation.ValidateStruct(v); verr != nil {
		return errors.New(verr.ToAPIError().Message)
	}
	return nil
}

func hasFieldError(verr *validation.RequestValidationError, field string) bool {
	for _, e := range verr.Errors() {
		if e.Field() == field {
			return true
		}
	}
	return false
}

func newRecommendCmd(a *app) *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:   "recommend <product>",
		Short: "List the products most similar to a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("top-n") {
				topN = a.cfg.Recommend.DefaultTopN
			}
			req := api.RecommendationRequest{Product: args[0], TopN: topN}
			if verr := validation.ValidateStruct(&req); verr != nil {
				if hasFieldError(verr, "product") {
					return fmt.Errorf("please enter a product name: %s", verr.ToAPIError().Message)
				}
				return errors.New(verr.ToAPIError().Message)
			}
			if req.TopN > a.cfg.Recommend.MaxTopN {
				return fmt.Errorf("top-n must be at most %d", a.cfg.Recommend.MaxTopN)
			}

			m, _, err := a.loadModel(cmd.Context())
			if err != nil {
				return err
			}
			res := m.GetRecommendations(req.Product, req.TopN)
			if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Found {
				return fmt.Errorf("%w: %q", errProductNotFound, req.Product)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&topN, "top-n", "n", 0, "number of recommendations (default recommend.default_top_n)")
	return cmd
}

func newClassifyCmd(a *app) *cobra.Command {
	var recency, frequency, monetary float64

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Assign a recency/frequency/monetary triple to a customer segment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := api.ClassifyRequest{Recency: &recency, Frequency: &frequency, Monetary: &monetary}
			if err := validate(&req); err != nil {
				return err
			}

			m, _, err := a.loadModel(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), m.ClassifyCustomer(recency, frequency, monetary))
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&recency, "recency", 0, "days since the last purchase")
	flags.Float64Var(&frequency, "frequency", 0, "number of invoice line items")
	flags.Float64Var(&monetary, "monetary", 0, "total quantity purchased")
	for _, name := range []string{"recency", "frequency", "monetary"} {
		_ = cmd.MarkFlagRequired(name) //nolint:errcheck // flag is defined above
	}
	return cmd
}

func newSegmentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "segments",
		Short: "List the fitted customer segments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, _, err := a.loadModel(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), m.Segments())
		},
	}
}
