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
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/veridion-labs/circulens/cmd/circulens/config"
	"github.com/veridion-labs/circulens/pkg/analysis"
	"github.com/veridion-labs/circulens/pkg/gateway"
	"github.com/veridion-labs/circulens/pkg/notify"
	"github.com/veridion-labs/circulens/pkg/process"
	"github.com/veridion-labs/circulens/pkg/ux"
)

// runDashboardCommand opens the interactive TUI dashboard.
func runDashboardCommand(cmd *cobra.Command, args []string) {
	if config.Global.Dashboard.CheckHealthOnStart {
		if _, err := serviceClient().Health(context.Background()); err != nil {
			exitOnServiceError(err)
		}
	}

	var preloaded *process.Description
	if processFile != "" {
		d, err := loadDescription(processFile)
		if err != nil {
			ux.Error(err.Error())
			os.Exit(1)
		}
		preloaded = &d
	} else {
		d, err := describeProcessForm()
		if err != nil {
			ux.Error(err.Error())
			os.Exit(1)
		}
		preloaded = &d
	}

	controller := analysis.NewController(serviceClient(), notify.NewChannel(), log)
	model := newDashboardModel(controller, preloaded)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		ux.Error("dashboard error: " + err.Error())
		os.Exit(1)
	}
}

// =============================================================================
// Model
// =============================================================================

// The tea.Cmd closures below perform only gateway I/O and carry the outcome
// back in these messages; every ViewState mutation happens in Update on the
// program loop goroutine, keeping the controller single-writer without locks.
type analysisDoneMsg struct {
	outcome *analysis.Outcome
	err     error
}

type comparisonDoneMsg struct {
	payload *gateway.ComparisonPayload
	err     error
}

type historyLoadedMsg struct {
	tab     analysis.Tab
	payload *gateway.ComparisonPayload
	err     error
}

var tabKeys = map[string]analysis.Tab{
	"1": analysis.TabInput,
	"2": analysis.TabResults,
	"3": analysis.TabCircularity,
	"4": analysis.TabComparison,
	"5": analysis.TabMetrics,
}

var tabTitles = map[analysis.Tab]string{
	analysis.TabInput:       "Input",
	analysis.TabResults:     "Results",
	analysis.TabCircularity: "Circularity",
	analysis.TabComparison:  "Comparison",
	analysis.TabMetrics:     "Metrics",
}

// dashboardModel renders the workflow controller's view state. All state
// mutation goes through the controller; the model holds only presentation
// concerns.
type dashboardModel struct {
	controller *analysis.Controller
	process    *process.Description
	spin       spinner.Model
	notices    []notify.Notification
	width      int
}

func newDashboardModel(controller *analysis.Controller, d *process.Description) dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ux.ColorLeafBright)
	return dashboardModel{
		controller: controller,
		process:    d,
		spin:       s,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case analysisDoneMsg:
		m.controller.FinishAnalysis(msg.outcome, msg.err)
		return m.drainNotices(), nil

	case comparisonDoneMsg:
		m.controller.FinishComparison(msg.payload, msg.err)
		return m.drainNotices(), nil

	case historyLoadedMsg:
		m.controller.FinishHistory(msg.payload, msg.err)
		m.controller.SwitchTab(msg.tab)
		return m.drainNotices(), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	busy := m.controller.State().Busy

	if tab, ok := tabKeys[key]; ok {
		if m.controller.WantsHistory(tab) && !busy {
			return m, func() tea.Msg {
				payload, err := m.controller.FetchHistory(context.Background())
				return historyLoadedMsg{tab: tab, payload: payload, err: err}
			}
		}
		// Plain tab switches are pure and never gated.
		m.controller.SwitchTab(tab)
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "a":
		// Busy gates the submit affordance: at most one analysis in flight.
		if busy || m.process == nil {
			return m, nil
		}
		d := *m.process
		if _, ok := m.controller.BeginAnalysis(d); !ok {
			return m.drainNotices(), nil
		}
		return m, func() tea.Msg {
			outcome, err := m.controller.Analyze(context.Background(), d)
			return analysisDoneMsg{outcome: outcome, err: err}
		}

	case "+":
		if busy || m.process == nil {
			return m, nil
		}
		m.controller.AddToQueue(*m.process)
		return m.drainNotices(), nil

	case "-":
		if busy {
			return m, nil
		}
		m.controller.RemoveFromQueue(m.controller.QueueLen() - 1)
		return m, nil

	case "c":
		if busy {
			return m, nil
		}
		batch, err := m.controller.BeginComparison()
		if err != nil {
			// Below the queue minimum; the affordance is simply inert.
			return m, nil
		}
		return m, func() tea.Msg {
			payload, err := m.controller.Compare(context.Background(), batch)
			return comparisonDoneMsg{payload: payload, err: err}
		}
	}
	return m, nil
}

func (m dashboardModel) drainNotices() dashboardModel {
	m.notices = append(m.notices, m.controller.Notifications().Drain()...)
	if len(m.notices) > 5 {
		m.notices = m.notices[len(m.notices)-5:]
	}
	return m
}

// =============================================================================
// View
// =============================================================================

func (m dashboardModel) View() string {
	state := m.controller.State()

	var b strings.Builder
	b.WriteString(m.renderTabs(state.ActiveTab))
	b.WriteString("\n\n")

	if state.Busy {
		b.WriteString(m.spin.View() + " Working...\n\n")
	}

	switch state.ActiveTab {
	case analysis.TabInput:
		b.WriteString(m.renderInput())
	case analysis.TabResults:
		b.WriteString(m.renderResults(state))
	case analysis.TabCircularity:
		b.WriteString(m.renderCircularity(state))
	case analysis.TabComparison:
		b.WriteString(m.renderComparison(state))
	case analysis.TabMetrics:
		b.WriteString(ux.Styles.Muted.Render("Run `circulens metrics` for model performance figures."))
		b.WriteString("\n")
	}

	for _, n := range m.notices {
		b.WriteString("\n" + renderNotice(n))
	}

	b.WriteString("\n\n" + ux.Styles.Muted.Render(
		"1-5 tabs  a analyze  + queue  - unqueue  c compare  q quit"))
	return b.String()
}

func (m dashboardModel) renderTabs(active analysis.Tab) string {
	parts := make([]string, 0, len(analysis.Tabs()))
	for i, tab := range analysis.Tabs() {
		title := fmt.Sprintf("%d %s", i+1, tabTitles[tab])
		if tab == active {
			parts = append(parts, ux.Styles.Highlight.Render(title))
		} else {
			parts = append(parts, ux.Styles.Muted.Render(title))
		}
	}
	return strings.Join(parts, "  ")
}

func (m dashboardModel) renderInput() string {
	if m.process == nil {
		return ux.Styles.Muted.Render("No process loaded.")
	}
	d := m.process

	var b strings.Builder
	b.WriteString(ux.Styles.Title.Render(d.Label()) + "\n")
	b.WriteString(kv("Capacity", formatOptional(d.ProductionCapacity, "%.0f tonnes/year")))
	b.WriteString(kv("Energy source", d.EnergySource))
	b.WriteString(kv("Location", d.ProcessingLocation))
	b.WriteString(kv("End of life", d.EndOfLifeOption))
	b.WriteString(kv("Energy consumption", formatOptional(d.EnergyConsumption, "%.1f MJ/kg")))
	b.WriteString(kv("Transport distance", formatOptional(d.TransportDistance, "%.0f km")))
	b.WriteString(kv("Ore grade", formatOptional(d.OreGrade, "%.1f%%")))
	b.WriteString(kv("Recycling rate", formatOptional(d.RecyclingRate, "%.1f%%")))

	b.WriteString(fmt.Sprintf("\nComparison queue: %d queued\n", m.controller.QueueLen()))
	for i, entry := range m.controller.QueueEntries() {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, entry.Label))
	}
	return b.String()
}

func (m dashboardModel) renderResults(state analysis.ViewState) string {
	if state.LastResult == nil {
		return ux.Styles.Muted.Render("No analysis yet. Press 'a' to analyze the loaded process.")
	}
	lca := state.LastResult.LCA

	var b strings.Builder
	b.WriteString(ux.Styles.Title.Render(fmt.Sprintf("%s (%s)", lca.MetalType, lca.ProcessRoute)) + "\n")
	b.WriteString(kv("CO2 emissions", fmt.Sprintf("%.2f kg CO2 eq/kg", lca.CO2Emissions)))
	b.WriteString(kv("Energy consumption", fmt.Sprintf("%.2f MJ/kg", lca.EnergyConsumption)))
	b.WriteString(kv("Water usage", fmt.Sprintf("%.2f L/kg", lca.WaterUsage)))
	b.WriteString(kv("Waste generation", fmt.Sprintf("%.3f kg/kg", lca.WasteGeneration)))
	if lca.GWP != nil {
		b.WriteString(kv("GWP", fmt.Sprintf("%.1f kg CO2e/tonne", *lca.GWP)))
	}
	b.WriteString(kv("Circularity score", fmt.Sprintf("%.1f%%", lca.CircularityScore)))
	b.WriteString(kv("Recycled content", fmt.Sprintf("%.1f%%", lca.RecycledContent)))
	return b.String()
}

func (m dashboardModel) renderCircularity(state analysis.ViewState) string {
	if state.LastResult == nil {
		return ux.Styles.Muted.Render("No analysis yet. Press 'a' to analyze the loaded process.")
	}
	circ := state.LastResult.Circularity

	var b strings.Builder
	b.WriteString(ux.Styles.Title.Render("Circularity") + "\n")
	b.WriteString(kv("Current score", fmt.Sprintf("%.1f", circ.CurrentScore)))
	b.WriteString(kv("Optimal score", fmt.Sprintf("%.1f", circ.OptimalScore)))
	if len(circ.ImprovementOpportunities) > 0 {
		b.WriteString("\nImprovement opportunities:\n")
		for _, opp := range circ.ImprovementOpportunities {
			b.WriteString("  " + string(ux.IconBullet) + " " + opp + "\n")
		}
	}
	for _, action := range circ.RecommendedActions {
		b.WriteString("  " + string(ux.IconArrow) + " " + action + "\n")
	}
	return b.String()
}

func (m dashboardModel) renderComparison(state analysis.ViewState) string {
	if len(state.LastComparisons) == 0 {
		if m.controller.QueueLen() > 0 {
			return ux.Styles.Muted.Render(
				fmt.Sprintf("%d queued. Press 'c' to run the comparison.", m.controller.QueueLen()))
		}
		return ux.Styles.Muted.Render("No comparison data. Queue processes with '+' or analyze some first.")
	}

	var b strings.Builder
	source := "stored history"
	if state.ComparisonMode {
		source = "live comparison"
	}
	b.WriteString(ux.Styles.Title.Render("Comparison") + " " +
		ux.Styles.Muted.Render("("+source+")") + "\n")
	for i, entry := range state.LastComparisons {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, ux.Styles.Bold.Render(entry.Label)))
		b.WriteString(kv("   CO2", fmt.Sprintf("%.2f kg CO2 eq/kg", entry.LCA.CO2Emissions)))
		b.WriteString(kv("   Circularity", fmt.Sprintf("%.1f%%", entry.LCA.CircularityScore)))
	}
	return b.String()
}

func renderNotice(n notify.Notification) string {
	switch n.Level {
	case notify.LevelSuccess:
		return ux.Styles.Success.Render("✓ " + n.Message)
	case notify.LevelWarning:
		return ux.Styles.Warning.Render("⚠ " + n.Message)
	case notify.LevelError:
		return ux.Styles.Error.Render("✗ " + n.Message)
	default:
		return ux.Styles.Subtitle.Render("→ " + n.Message)
	}
}

func kv(key, value string) string {
	return fmt.Sprintf("%s %s\n", ux.Styles.Muted.Render(key+":"), value)
}

func formatOptional(v *float64, format string) string {
	if v == nil {
		return "(predicted by service)"
	}
	return fmt.Sprintf(format, *v)
}
