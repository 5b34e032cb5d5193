// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides rich terminal output styling for the CircuLens CLI.
package ux

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// CircuLens color palette - mineral greens and smelter ambers
var (
	// Primary palette (brightest to darkest)
	ColorLeafBright  = lipgloss.Color("#3DDC84") // Bright leaf - highlights, success
	ColorLeafPrimary = lipgloss.Color("#2BB673") // Primary green - main brand color
	ColorMoss        = lipgloss.Color("#1F9D63") // Moss - interactive elements
	ColorFern        = lipgloss.Color("#17805A") // Fern - secondary elements
	ColorPine        = lipgloss.Color("#0F6349") // Pine - borders, accents

	// Dark palette (for backgrounds, muted elements)
	ColorSoil     = lipgloss.Color("#3A2F23") // Soil brown - deep backgrounds
	ColorGraphite = lipgloss.Color("#2B2F2C") // Graphite - near black
	ColorSlate    = lipgloss.Color("#4A5A52") // Slate - muted text, borders

	// Semantic colors
	ColorSuccess = lipgloss.Color("#3DDC84") // Bright leaf for success
	ColorWarning = lipgloss.Color("#E8A13C") // Smelter amber for warnings
	ColorError   = lipgloss.Color("#D64545") // Red for errors
	ColorMuted   = lipgloss.Color("#4A5A52") // Slate for muted text
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	// Text styles
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style

	// Box styles
	Box        lipgloss.Style
	InfoBox    lipgloss.Style
	WarningBox lipgloss.Style
	ErrorBox   lipgloss.Style

	// Status indicators
	StatusOK      lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusPending lipgloss.Style
}{
	// Text styles
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorLeafBright),
	Subtitle:  lipgloss.NewStyle().Foreground(ColorLeafPrimary),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorSlate),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorLeafBright).Bold(true),

	// Box styles
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPine).
		Padding(0, 1),
	InfoBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorLeafPrimary).
		Padding(0, 1),
	WarningBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(0, 1),
	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Padding(0, 1),

	// Status indicators
	StatusOK:      lipgloss.NewStyle().SetString("✓").Foreground(ColorSuccess),
	StatusWarning: lipgloss.NewStyle().SetString("⚠").Foreground(ColorWarning),
	StatusError:   lipgloss.NewStyle().SetString("✗").Foreground(ColorError),
	StatusPending: lipgloss.NewStyle().SetString("○").Foreground(ColorSlate),
}

// Icon provides themed status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconPending Icon = "○"
	IconArrow   Icon = "→"
	IconBullet  Icon = "•"
	IconLeaf    Icon = "♻"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	case IconPending:
		return Styles.Muted.Render(string(i))
	default:
		return string(i)
	}
}

// interactive reports whether stdout is a terminal. When it is not (piped or
// redirected output), the print helpers fall back to plain prefixed lines.
var interactive = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// Title prints a styled title
func Title(text string) {
	if !interactive {
		fmt.Println(text)
		return
	}
	fmt.Println(Styles.Title.Render(text))
}

// Success prints a success message with checkmark
func Success(text string) {
	if !interactive {
		fmt.Fprintf(os.Stdout, "OK: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", IconSuccess.Render(), text)
}

// Warning prints a warning message
func Warning(text string) {
	if !interactive {
		fmt.Fprintf(os.Stdout, "WARN: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", IconWarning.Render(), Styles.Warning.Render(text))
}

// Error prints an error message to stderr
func Error(text string) {
	if !interactive {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", text)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", IconError.Render(), Styles.Error.Render(text))
}

// Info prints an informational message
func Info(text string) {
	if !interactive {
		fmt.Println(text)
		return
	}
	fmt.Printf("%s %s\n", Styles.Subtitle.Render(string(IconArrow)), text)
}

// Box prints content inside a rounded border
func Box(content string) {
	if !interactive {
		fmt.Println(content)
		return
	}
	fmt.Println(Styles.Box.Render(content))
}

// KeyValue prints an aligned key/value line
func KeyValue(key, value string) {
	if !interactive {
		fmt.Printf("%s: %s\n", key, value)
		return
	}
	fmt.Printf("%s %s\n", Styles.Muted.Render(key+":"), value)
}
