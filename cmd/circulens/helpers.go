// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/veridion-labs/circulens/cmd/circulens/config"
	"github.com/veridion-labs/circulens/pkg/analysis"
	"github.com/veridion-labs/circulens/pkg/gateway"
	"github.com/veridion-labs/circulens/pkg/process"
	"github.com/veridion-labs/circulens/pkg/ux"
)

// serviceClient builds a gateway client from the loaded config.
func serviceClient() *gateway.Client {
	cfg := config.Global.Service
	opts := []gateway.Option{gateway.WithLogger(log)}
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, gateway.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	}
	return gateway.NewClient(cfg.BaseURL, opts...)
}

// loadDescription reads one process description from a YAML file.
func loadDescription(path string) (process.Description, error) {
	var d process.Description
	data, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parsing %s: %w", path, err)
	}
	return d, nil
}

// loadDescriptions reads every document from a multi-document YAML file.
func loadDescriptions(path string) ([]process.Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var out []process.Description
	dec := yaml.NewDecoder(f)
	for {
		var d process.Description
		if err := dec.Decode(&d); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// resolveDescription loads from --file when given, otherwise opens the
// interactive form.
func resolveDescription() (process.Description, error) {
	if processFile != "" {
		return loadDescription(processFile)
	}
	return describeProcessForm()
}

// printFieldErrors renders a validation error map inline, sorted by field
// for stable output. The whole message goes to stderr so redirecting stdout
// keeps it intact.
func printFieldErrors(errs map[string]string) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	ux.Error("Invalid process description:")
	for _, field := range fields {
		fmt.Fprintf(os.Stderr, "  %s %s: %s\n", ux.IconBullet.Render(), field, errs[field])
	}
}

// exitOnServiceError prints a gateway failure and exits non-zero. Transport
// failures get a hint about the service address.
func exitOnServiceError(err error) {
	var svcErr *gateway.ServiceError
	if errors.As(err, &svcErr) && svcErr.Kind == gateway.KindTransport {
		ux.Error(err.Error())
		ux.Info("Is the analysis service running at " + config.Global.Service.BaseURL + "?")
		os.Exit(1)
	}
	ux.Error(err.Error())
	os.Exit(1)
}

// printJSON pretty-prints a value as JSON to stdout.
func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		ux.Error("encoding output: " + err.Error())
		os.Exit(1)
	}
	fmt.Println(string(data))
}

// renderOutcome prints one finished analysis.
func renderOutcome(outcome *analysis.Outcome) {
	lca := outcome.LCA
	circ := outcome.Circularity

	ux.Title(fmt.Sprintf("%s (%s)", lca.MetalType, lca.ProcessRoute))
	ux.KeyValue("CO2 emissions", fmt.Sprintf("%.2f kg CO2 eq/kg", lca.CO2Emissions))
	ux.KeyValue("Energy consumption", fmt.Sprintf("%.2f MJ/kg", lca.EnergyConsumption))
	ux.KeyValue("Water usage", fmt.Sprintf("%.2f L/kg", lca.WaterUsage))
	ux.KeyValue("Waste generation", fmt.Sprintf("%.3f kg/kg", lca.WasteGeneration))
	if lca.GWP != nil {
		ux.KeyValue("GWP", fmt.Sprintf("%.1f kg CO2e/tonne", *lca.GWP))
	}
	ux.KeyValue("Circularity score", fmt.Sprintf("%.1f%%", lca.CircularityScore))
	ux.KeyValue("Recycled content", fmt.Sprintf("%.1f%%", lca.RecycledContent))

	fmt.Println()
	ux.Title("Circularity")
	ux.KeyValue("Current score", fmt.Sprintf("%.1f", circ.CurrentScore))
	ux.KeyValue("Optimal score", fmt.Sprintf("%.1f", circ.OptimalScore))
	for _, opp := range circ.ImprovementOpportunities {
		fmt.Printf("  %s %s\n", ux.IconBullet.Render(), opp)
	}
}

// renderComparisons prints a normalized comparison set.
func renderComparisons(entries []analysis.ComparisonEntry) {
	if len(entries) == 0 {
		ux.Info("No comparison data available")
		return
	}
	for i, entry := range entries {
		ux.Title(fmt.Sprintf("%d. %s", i+1, entry.Label))
		ux.KeyValue("CO2 emissions", fmt.Sprintf("%.2f kg CO2 eq/kg", entry.LCA.CO2Emissions))
		ux.KeyValue("Energy consumption", fmt.Sprintf("%.2f MJ/kg", entry.LCA.EnergyConsumption))
		ux.KeyValue("Circularity score", fmt.Sprintf("%.1f%%", entry.LCA.CircularityScore))
		ux.KeyValue("Recycled content", fmt.Sprintf("%.1f%%", entry.LCA.RecycledContent))
		fmt.Println()
	}
}
