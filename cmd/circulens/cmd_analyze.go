// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/veridion-labs/circulens/pkg/analysis"
	"github.com/veridion-labs/circulens/pkg/notify"
	"github.com/veridion-labs/circulens/pkg/process"
	"github.com/veridion-labs/circulens/pkg/ux"
)

// runAnalyzeCommand runs the full two-stage analysis workflow for one
// process description and renders the combined result.
func runAnalyzeCommand(cmd *cobra.Command, args []string) {
	d, err := resolveDescription()
	if err != nil {
		ux.Error(err.Error())
		os.Exit(1)
	}

	if result := process.Validate(d); !result.Valid {
		printFieldErrors(result.Errors)
		os.Exit(1)
	}

	controller := analysis.NewController(serviceClient(), notify.NewChannel(), log)

	var outcome *analysis.Outcome
	err = ux.WithSpinner("Analyzing "+d.Label(), func() error {
		if _, runErr := controller.RunAnalysis(context.Background(), d); runErr != nil {
			return runErr
		}
		outcome = controller.State().LastResult
		return nil
	})
	if err != nil {
		exitOnServiceError(err)
	}

	if jsonOutput {
		printJSON(map[string]any{
			"lca":         outcome.LCA,
			"circularity": outcome.Circularity,
		})
		return
	}
	renderOutcome(outcome)
}
