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
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/veridion-labs/circulens/cmd/circulens/config"
	"github.com/veridion-labs/circulens/pkg/ux"
)

// runHealthCommand checks the analysis service and reports component status.
func runHealthCommand(cmd *cobra.Command, args []string) {
	status, err := serviceClient().Health(context.Background())
	if err != nil {
		exitOnServiceError(err)
	}

	if status.Healthy() {
		ux.Success("Service healthy at " + config.Global.Service.BaseURL)
	} else {
		ux.Warning("Service reported status: " + status.Status)
	}
	if status.Version != "" {
		ux.KeyValue("Version", status.Version)
	}

	components := make([]string, 0, len(status.Components))
	for name := range status.Components {
		components = append(components, name)
	}
	sort.Strings(components)
	for _, name := range components {
		if status.Components[name] {
			fmt.Printf("  %s %s\n", ux.Styles.StatusOK.Render(), name)
		} else {
			fmt.Printf("  %s %s\n", ux.Styles.StatusError.Render(), name)
		}
	}

	if !status.Healthy() {
		os.Exit(1)
	}
}
