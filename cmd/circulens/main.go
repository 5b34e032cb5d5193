// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veridion-labs/circulens/cmd/circulens/config"
	"github.com/veridion-labs/circulens/pkg/logging"
)

// log is the process-wide CLI logger, configured in PersistentPreRun once the
// config file is loaded.
var log = logging.Default()

func main() {
	defer log.Close()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if err := config.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		log = newLogger(config.Global.Logging)
	}
}

func newLogger(cfg config.LoggingConfig) *logging.Logger {
	level := logging.LevelInfo
	switch cfg.Level {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}
	return logging.New(logging.Config{
		Level:   level,
		LogDir:  cfg.Dir,
		Service: "cli",
		Quiet:   true, // stderr is for user-facing output; logs go to file
	})
}
