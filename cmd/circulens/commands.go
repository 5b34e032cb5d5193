// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	processFile  string // YAML file holding a process description
	scenarioFile string // YAML file holding named simulation scenarios
	jsonOutput   bool   // Raw JSON output for scripting

	rootCmd = &cobra.Command{
		Use:   "circulens",
		Short: "A cli for metallurgical life-cycle and circularity analysis",
		Long: `CircuLens drives a remote LCA analysis service: submit metallurgical
process configurations, compare production routes side by side, and
explore the results in an interactive dashboard.`,
	}

	// --- Analysis ---
	analyzeCmd = &cobra.Command{
		Use:   "analyze",
		Short: "Run LCA and circularity analysis for one process configuration",
		Run:   runAnalyzeCommand, // Defined in cmd_analyze.go
	}

	// --- Comparison ---
	compareCmd = &cobra.Command{
		Use:   "compare",
		Short: "Compare multiple process configurations side by side",
	}
	compareRunCmd = &cobra.Command{
		Use:   "run",
		Short: "Queue the processes from a YAML file and submit the comparison",
		Run:   runCompareCommand, // Defined in cmd_compare.go
	}
	compareHistoryCmd = &cobra.Command{
		Use:   "history",
		Short: "Show previously stored analyses as a comparison",
		Run:   runCompareHistoryCommand, // Defined in cmd_compare.go
	}
	compareClearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Delete all analyses stored on the service",
		Run:   runCompareClearCommand, // Defined in cmd_compare.go
	}

	// --- Service Introspection ---
	healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Check whether the analysis service is reachable and healthy",
		Run:   runHealthCommand, // Defined in cmd_health.go
	}
	metalsCmd = &cobra.Command{
		Use:   "metals",
		Short: "List the metals the service can analyze",
		Run:   runMetalsCommand, // Defined in cmd_service.go
	}
	metricsCmd = &cobra.Command{
		Use:   "metrics",
		Short: "Show the service's prediction model performance metrics",
		Run:   runMetricsCommand, // Defined in cmd_service.go
	}
	graphCmd = &cobra.Command{
		Use:   "graph [process-id]",
		Short: "Fetch the circularity flow graph for an analyzed process",
		Args:  cobra.ExactArgs(1),
		Run:   runGraphCommand, // Defined in cmd_service.go
	}

	// --- Reporting / Simulation ---
	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Generate a sustainability report for one process configuration",
		Run:   runReportCommand, // Defined in cmd_report.go
	}
	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Run what-if scenarios from a YAML scenario file",
		Run:   runSimulateCommand, // Defined in cmd_report.go
	}

	// --- Dashboard ---
	dashboardCmd = &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive analysis dashboard",
		Run:   runDashboardCommand, // Defined in dashboard.go
	}
)

func init() {
	analyzeCmd.Flags().StringVarP(&processFile, "file", "f", "",
		"YAML file with the process description (omit for interactive form)")
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false,
		"Output raw JSON for scripting")

	compareRunCmd.Flags().StringVarP(&processFile, "file", "f", "",
		"Multi-document YAML file, one process description per document")
	compareRunCmd.MarkFlagRequired("file")

	reportCmd.Flags().StringVarP(&processFile, "file", "f", "",
		"YAML file with the process description (omit for interactive form)")

	simulateCmd.Flags().StringVarP(&scenarioFile, "file", "f", "",
		"YAML file mapping scenario names to process descriptions")
	simulateCmd.MarkFlagRequired("file")

	dashboardCmd.Flags().StringVarP(&processFile, "file", "f", "",
		"YAML file with a process description to preload into the input tab")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(compareCmd)
	compareCmd.AddCommand(compareRunCmd)
	compareCmd.AddCommand(compareHistoryCmd)
	compareCmd.AddCommand(compareClearCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metalsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(dashboardCmd)
}
