// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veridion-labs/circulens/pkg/analysis"
	"github.com/veridion-labs/circulens/pkg/notify"
	"github.com/veridion-labs/circulens/pkg/ux"
)

// runCompareCommand queues every process description from the file and
// submits the batch comparison.
func runCompareCommand(cmd *cobra.Command, args []string) {
	descriptions, err := loadDescriptions(processFile)
	if err != nil {
		ux.Error(err.Error())
		os.Exit(1)
	}

	controller := analysis.NewController(serviceClient(), notify.NewChannel(), log)
	for i, d := range descriptions {
		if result := controller.AddToQueue(d); !result.Valid {
			ux.Error(fmt.Sprintf("Document %d failed validation:", i+1))
			printFieldErrors(result.Errors)
			os.Exit(1)
		}
	}

	err = ux.WithSpinner(fmt.Sprintf("Comparing %d processes", controller.QueueLen()), func() error {
		return controller.SubmitComparison(context.Background())
	})
	if err != nil {
		if errors.Is(err, analysis.ErrInsufficientEntries) {
			ux.Error("A comparison needs at least 2 process descriptions; the file held " +
				fmt.Sprintf("%d", len(descriptions)))
			os.Exit(1)
		}
		exitOnServiceError(err)
	}

	renderComparisons(controller.State().LastComparisons)
}

// runCompareHistoryCommand fetches the service's stored analyses and shows
// them as a comparison.
func runCompareHistoryCommand(cmd *cobra.Command, args []string) {
	client := serviceClient()

	payload, err := client.StoredComparisons(context.Background())
	if err != nil {
		exitOnServiceError(err)
	}

	entries := analysis.Normalize(payload)
	if len(entries) == 0 {
		ux.Info("Not enough stored analyses for a comparison (need at least 2)")
		return
	}
	renderComparisons(entries)
}

// runCompareClearCommand deletes the service-side stored analyses.
func runCompareClearCommand(cmd *cobra.Command, args []string) {
	if err := serviceClient().ClearStoredComparisons(context.Background()); err != nil {
		exitOnServiceError(err)
	}
	ux.Success("Stored analyses cleared")
}
