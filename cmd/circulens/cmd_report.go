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

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/veridion-labs/circulens/pkg/process"
	"github.com/veridion-labs/circulens/pkg/ux"
)

// runReportCommand generates a sustainability report for one process.
func runReportCommand(cmd *cobra.Command, args []string) {
	d, err := resolveDescription()
	if err != nil {
		ux.Error(err.Error())
		os.Exit(1)
	}
	if result := process.Validate(d); !result.Valid {
		printFieldErrors(result.Errors)
		os.Exit(1)
	}

	var report []byte
	err = ux.WithSpinner("Generating report for "+d.Label(), func() error {
		raw, genErr := serviceClient().GenerateReport(context.Background(), d)
		report = raw
		return genErr
	})
	if err != nil {
		exitOnServiceError(err)
	}
	fmt.Println(string(report))
}

// runSimulateCommand runs what-if scenarios from a YAML scenario map.
func runSimulateCommand(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(scenarioFile)
	if err != nil {
		ux.Error(err.Error())
		os.Exit(1)
	}

	var scenarios map[string]process.Description
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		ux.Error("parsing " + scenarioFile + ": " + err.Error())
		os.Exit(1)
	}
	for name, d := range scenarios {
		if result := process.Validate(d); !result.Valid {
			ux.Error("Scenario " + name + " failed validation:")
			printFieldErrors(result.Errors)
			os.Exit(1)
		}
	}

	outcomes, err := serviceClient().SimulateScenarios(context.Background(), scenarios)
	if err != nil {
		exitOnServiceError(err)
	}

	for _, outcome := range outcomes {
		ux.Title(outcome.Scenario)
		fmt.Println(string(outcome.Results))
		fmt.Println()
	}
}
