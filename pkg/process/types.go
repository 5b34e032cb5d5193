// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package process defines the metallurgical process description submitted to
// the remote LCA service, the result records it returns, and client-side
// input validation.
//
// Field names follow the service's wire format (snake_case JSON). Optional
// numeric fields are pointers: a nil pointer is serialized as an absent field,
// which tells the service to predict the value. They are never defaulted
// client-side — zero and absent mean different things.
package process

import "fmt"

// MetalType identifies one of the metals the service can analyze.
type MetalType string

const (
	MetalAluminium MetalType = "Aluminium"
	MetalCopper    MetalType = "Copper"
	MetalSteel     MetalType = "Steel"
	MetalZinc      MetalType = "Zinc"
	MetalLead      MetalType = "Lead"
)

// Route distinguishes primary production from recycled-feedstock routes.
type Route string

const (
	RoutePrimary  Route = "Primary"
	RouteRecycled Route = "Recycled"
)

// Description is the unit of work submitted for analysis: one metallurgical
// production configuration.
//
// Required fields: MetalType, ProcessRoute, ProductionCapacity, EnergySource,
// ProcessingLocation, EndOfLifeOption. The remaining fields are optional and
// predicted by the service when absent.
type Description struct {
	MetalType          MetalType `json:"metal_type" yaml:"metal_type" validate:"required,oneof=Aluminium Copper Steel Zinc Lead"`
	ProcessRoute       Route     `json:"process_route" yaml:"process_route" validate:"required,oneof=Primary Recycled"`
	ProductionCapacity *float64  `json:"production_capacity" yaml:"production_capacity" validate:"required,gt=0"`
	EnergySource       string    `json:"energy_source" yaml:"energy_source" validate:"required"`
	EnergyConsumption  *float64  `json:"energy_consumption,omitempty" yaml:"energy_consumption,omitempty" validate:"omitempty,gte=0"`
	TransportDistance  *float64  `json:"transport_distance,omitempty" yaml:"transport_distance,omitempty" validate:"omitempty,gte=0"`
	ProcessingLocation string    `json:"processing_location" yaml:"processing_location" validate:"required"`
	OreGrade           *float64  `json:"ore_grade,omitempty" yaml:"ore_grade,omitempty" validate:"omitempty,gte=0,lte=100"`
	EndOfLifeOption    string    `json:"end_of_life_option" yaml:"end_of_life_option" validate:"required"`
	RecyclingRate      *float64  `json:"recycling_rate,omitempty" yaml:"recycling_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// Label returns the display name used for queued comparison entries,
// e.g. "Aluminium - Primary".
func (d Description) Label() string {
	return fmt.Sprintf("%s - %s", d.MetalType, d.ProcessRoute)
}

// Float returns a pointer to v, for filling optional Description fields.
func Float(v float64) *float64 { return &v }

// AnalysisResult is the opaque record the service returns for one
// Description. The client never recomputes or mutates it.
type AnalysisResult struct {
	MetalType                string             `json:"metal_type"`
	ProcessRoute             string             `json:"process_route"`
	EnergyConsumption        float64            `json:"energy_consumption"` // MJ/kg
	CO2Emissions             float64            `json:"co2_emissions"`      // kg CO2 eq/kg
	WaterUsage               float64            `json:"water_usage"`        // L/kg
	WasteGeneration          float64            `json:"waste_generation"`   // kg/kg
	LandUse                  *float64           `json:"land_use,omitempty"`
	GWP                      *float64           `json:"gwp,omitempty"` // kg CO2e/tonne
	AcidificationPotential   *float64           `json:"acidification_potential,omitempty"`
	EutrophicationPotential  *float64           `json:"eutrophication_potential,omitempty"`
	HumanToxicity            *float64           `json:"human_toxicity,omitempty"`
	CircularityScore         float64            `json:"circularity_score"` // percentage
	RecycledContent          float64            `json:"recycled_content"`  // percentage
	ResourceEfficiency       float64            `json:"resource_efficiency"`
	PredictedValues          map[string]any     `json:"predicted_values,omitempty"`
	ConfidenceScores         map[string]float64 `json:"confidence_scores,omitempty"`
}

// CircularityAnalysis is the circularity record returned by
// POST /api/circularity/analyze.
type CircularityAnalysis struct {
	CurrentScore             float64        `json:"current_score"`
	OptimalScore             float64        `json:"optimal_score"`
	ImprovementOpportunities []string       `json:"improvement_opportunities"`
	FlowOptimization         map[string]any `json:"flow_optimization"`
	RecommendedActions       []string       `json:"recommended_actions"`
}

// Interactive-form option lists. These mirror the dropdowns of the service's
// reference frontend; they are suggestions for input, not validated enums
// (the service accepts free-form values for these fields).
var (
	EnergySourceOptions = []string{
		"Coal",
		"Natural Gas",
		"Grid Mix",
		"Solar",
		"Wind",
		"Hydro",
		"Mixed (Coal + Solar)",
	}

	ProcessingLocationOptions = []string{
		"Odisha, India",
		"Jharkhand, India",
		"Chhattisgarh, India",
		"Gujarat, India",
		"Rajasthan, India",
		"Karnataka, India",
	}

	EndOfLifeOptions = []string{
		"Recycling",
		"Reuse",
		"Landfill",
		"Incineration",
		"Downcycling",
	}
)

// Metals lists the metal types the service supports, in menu order.
func Metals() []MetalType {
	return []MetalType{MetalAluminium, MetalCopper, MetalSteel, MetalZinc, MetalLead}
}
