// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/veridion-labs/circulens/pkg/process"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadDescription(t *testing.T) {
	path := writeFixture(t, "process.yaml", `
metal_type: Aluminium
process_route: Primary
production_capacity: 7500
energy_source: Mixed (Coal + Solar)
processing_location: Odisha, India
end_of_life_option: Recycling
`)

	d, err := loadDescription(path)
	if err != nil {
		t.Fatalf("loadDescription: %v", err)
	}
	if d.MetalType != process.MetalAluminium {
		t.Errorf("MetalType = %q", d.MetalType)
	}
	if d.ProductionCapacity == nil || *d.ProductionCapacity != 7500 {
		t.Errorf("ProductionCapacity = %v", d.ProductionCapacity)
	}
	// Omitted optional fields must stay absent, not zero.
	if d.OreGrade != nil {
		t.Errorf("OreGrade should be nil, got %v", *d.OreGrade)
	}
}

func TestLoadDescription_MissingFile(t *testing.T) {
	if _, err := loadDescription("/nonexistent/process.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadDescriptions_MultiDocument(t *testing.T) {
	path := writeFixture(t, "batch.yaml", `
metal_type: Aluminium
process_route: Primary
production_capacity: 7500
energy_source: Coal
processing_location: Odisha, India
end_of_life_option: Recycling
---
metal_type: Steel
process_route: Recycled
production_capacity: 12000
energy_source: Grid Mix
processing_location: Jharkhand, India
end_of_life_option: Reuse
recycling_rate: 85
`)

	batch, err := loadDescriptions(path)
	if err != nil {
		t.Fatalf("loadDescriptions: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(batch))
	}
	if batch[0].MetalType != process.MetalAluminium || batch[1].MetalType != process.MetalSteel {
		t.Errorf("unexpected metals: %q, %q", batch[0].MetalType, batch[1].MetalType)
	}
	if batch[1].RecyclingRate == nil || *batch[1].RecyclingRate != 85 {
		t.Errorf("RecyclingRate = %v", batch[1].RecyclingRate)
	}
}

func TestPrintFieldErrors_AllOnStderr(t *testing.T) {
	origStdout, origStderr := os.Stdout, os.Stderr
	outR, outW, _ := os.Pipe()
	errR, errW, _ := os.Pipe()
	os.Stdout, os.Stderr = outW, errW
	defer func() { os.Stdout, os.Stderr = origStdout, origStderr }()

	printFieldErrors(map[string]string{
		"production_capacity": "must be greater than 0",
		"energy_source":       "is required",
	})

	outW.Close()
	errW.Close()
	stdout, _ := io.ReadAll(outR)
	stderr, _ := io.ReadAll(errR)

	if len(stdout) != 0 {
		t.Errorf("nothing should reach stdout, got %q", stdout)
	}
	got := string(stderr)
	if !strings.Contains(got, "Invalid process description:") {
		t.Errorf("stderr missing header: %q", got)
	}
	if !strings.Contains(got, "production_capacity: must be greater than 0") {
		t.Errorf("stderr missing field line: %q", got)
	}
	// Fields print sorted for stable output.
	if strings.Index(got, "energy_source") > strings.Index(got, "production_capacity") {
		t.Errorf("fields should be sorted: %q", got)
	}
}

func TestOptionalFloat(t *testing.T) {
	if optionalFloat("") != nil {
		t.Error("blank input must stay absent")
	}
	if optionalFloat("  ") != nil {
		t.Error("whitespace input must stay absent")
	}
	v := optionalFloat("42.5")
	if v == nil || *v != 42.5 {
		t.Errorf("optionalFloat(42.5) = %v", v)
	}
}

func TestFormValidators(t *testing.T) {
	if err := requirePositiveNumber("7500"); err != nil {
		t.Errorf("7500 should be accepted: %v", err)
	}
	if err := requirePositiveNumber("0"); err == nil {
		t.Error("0 should be rejected")
	}
	if err := optionalNonNegative(""); err != nil {
		t.Errorf("blank should be accepted: %v", err)
	}
	if err := optionalNonNegative("-1"); err == nil {
		t.Error("-1 should be rejected")
	}
	if err := optionalPercentage("100"); err != nil {
		t.Errorf("100 should be accepted: %v", err)
	}
	if err := optionalPercentage("150"); err == nil {
		t.Error("150 should be rejected")
	}
}
