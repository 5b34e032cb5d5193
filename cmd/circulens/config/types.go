// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

type CircuLensConfig struct {
	// Service: where the remote analysis service lives
	Service ServiceConfig `yaml:"service"`

	// Logging: CLI log output
	Logging LoggingConfig `yaml:"logging"`

	// Dashboard: interactive TUI behavior
	Dashboard DashboardConfig `yaml:"dashboard"`
}

type ServiceConfig struct {
	BaseURL        string `yaml:"base_url"`        // e.g. http://localhost:8000
	TimeoutSeconds int    `yaml:"timeout_seconds"` // per-call timeout, default 30
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Dir   string `yaml:"dir"`   // log file directory, empty disables file logging
}

type DashboardConfig struct {
	// CheckHealthOnStart pings /api/health before opening the dashboard
	CheckHealthOnStart bool `yaml:"check_health_on_start"`
}

func DefaultConfig() CircuLensConfig {
	return CircuLensConfig{
		Service: ServiceConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "~/.circulens/logs",
		},
		Dashboard: DashboardConfig{
			CheckHealthOnStart: true,
		},
	}
}
