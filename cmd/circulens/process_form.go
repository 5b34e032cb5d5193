// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/veridion-labs/circulens/pkg/process"
)

// describeProcessForm collects a process description interactively. Optional
// numeric fields left blank stay absent, which tells the service to predict
// them.
func describeProcessForm() (process.Description, error) {
	var (
		metal     string
		route     string
		capacity  string
		energy    string
		energyUse string
		transport string
		location  string
		oreGrade  string
		endOfLife string
		recycling string
	)

	metalOptions := make([]huh.Option[string], 0, len(process.Metals()))
	for _, m := range process.Metals() {
		metalOptions = append(metalOptions, huh.NewOption(string(m), string(m)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Metal").
				Options(metalOptions...).
				Value(&metal),
			huh.NewSelect[string]().
				Title("Process route").
				Options(
					huh.NewOption("Primary (virgin feedstock)", string(process.RoutePrimary)),
					huh.NewOption("Recycled (secondary feedstock)", string(process.RouteRecycled)),
				).
				Value(&route),
			huh.NewInput().
				Title("Production capacity (tonnes/year)").
				Validate(requirePositiveNumber).
				Value(&capacity),
			huh.NewSelect[string]().
				Title("Energy source").
				Options(huh.NewOptions(process.EnergySourceOptions...)...).
				Value(&energy),
			huh.NewSelect[string]().
				Title("Processing location").
				Options(huh.NewOptions(process.ProcessingLocationOptions...)...).
				Value(&location),
			huh.NewSelect[string]().
				Title("End-of-life option").
				Options(huh.NewOptions(process.EndOfLifeOptions...)...).
				Value(&endOfLife),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Energy consumption (MJ/kg)").
				Description("Leave blank to let the service predict it").
				Validate(optionalNonNegative).
				Value(&energyUse),
			huh.NewInput().
				Title("Transport distance (km)").
				Description("Leave blank to let the service predict it").
				Validate(optionalNonNegative).
				Value(&transport),
			huh.NewInput().
				Title("Ore grade (%)").
				Description("0-100, leave blank to let the service predict it").
				Validate(optionalPercentage).
				Value(&oreGrade),
			huh.NewInput().
				Title("Recycling rate (%)").
				Description("0-100, leave blank to let the service predict it").
				Validate(optionalPercentage).
				Value(&recycling),
		),
	)

	if err := form.Run(); err != nil {
		return process.Description{}, err
	}

	capacityValue, err := strconv.ParseFloat(strings.TrimSpace(capacity), 64)
	if err != nil {
		return process.Description{}, errors.New("production capacity must be a number")
	}

	d := process.Description{
		MetalType:          process.MetalType(metal),
		ProcessRoute:       process.Route(route),
		ProductionCapacity: process.Float(capacityValue),
		EnergySource:       energy,
		ProcessingLocation: location,
		EndOfLifeOption:    endOfLife,
	}
	d.EnergyConsumption = optionalFloat(energyUse)
	d.TransportDistance = optionalFloat(transport)
	d.OreGrade = optionalFloat(oreGrade)
	d.RecyclingRate = optionalFloat(recycling)
	return d, nil
}

func optionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return process.Float(v)
}

func requirePositiveNumber(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter a number")
	}
	if v <= 0 {
		return errors.New("must be greater than 0")
	}
	return nil
}

func optionalNonNegative(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("enter a number or leave blank")
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func optionalPercentage(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("enter a number or leave blank")
	}
	if v < 0 || v > 100 {
		return errors.New("must be between 0 and 100")
	}
	return nil
}
