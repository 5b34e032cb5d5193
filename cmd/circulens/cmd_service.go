// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veridion-labs/circulens/pkg/ux"
)

// runMetalsCommand lists the metals the service supports.
func runMetalsCommand(cmd *cobra.Command, args []string) {
	metals, err := serviceClient().Metals(context.Background())
	if err != nil {
		exitOnServiceError(err)
	}

	ux.Title("Supported metals")
	for _, m := range metals {
		fmt.Printf("  %s %s (%s)  typical recycling rate %s\n",
			ux.IconBullet.Render(), m.Name, m.Symbol, m.TypicalRecyclingRate)
	}
}

// runMetricsCommand shows the service's model performance figures.
func runMetricsCommand(cmd *cobra.Command, args []string) {
	metrics, err := serviceClient().ModelMetrics(context.Background())
	if err != nil {
		exitOnServiceError(err)
	}

	ux.Title("Prediction model performance")
	ux.KeyValue("R2 score", fmt.Sprintf("%.3f", metrics.R2Score))
	ux.KeyValue("F1 score", fmt.Sprintf("%.3f", metrics.F1Score))
	ux.KeyValue("Accuracy", fmt.Sprintf("%.3f", metrics.Accuracy))
	ux.KeyValue("MAE", fmt.Sprintf("%.3f", metrics.MAE))
	ux.KeyValue("RMSE", fmt.Sprintf("%.3f", metrics.RMSE))
	if metrics.ErrorPercentage > 0 {
		ux.KeyValue("Error", fmt.Sprintf("%.1f%%", metrics.ErrorPercentage))
	}
}

// runGraphCommand fetches the circularity flow graph for a process id.
func runGraphCommand(cmd *cobra.Command, args []string) {
	graph, err := serviceClient().CircularityGraph(context.Background(), args[0])
	if err != nil {
		exitOnServiceError(err)
	}
	// The graph record is consumed by visualization tooling; emit it raw.
	fmt.Println(string(graph))
}
