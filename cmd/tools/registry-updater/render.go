// cmd/tools/registry-updater/render.go
package main

import (
	"fmt"
	"sort"
	"strings"

	"bizcoach-workers/pkg/registry"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle = map[string]lipgloss.Style{
		registry.StatusVerified:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		registry.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		registry.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		registry.StatusPlanned:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

// renderActivities groups activities by category, in alphabetical order.
func renderActivities(reg *registry.ActivityRegistry, onlyCategory string) string {
	groups := make(map[string][]registry.Activity)
	for _, a := range reg.Activities {
		if onlyCategory != "" && a.Category != onlyCategory {
			continue
		}
		groups[a.Category] = append(groups[a.Category], a)
	}

	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var b strings.Builder
	for _, c := range categories {
		b.WriteString(headerStyle.Render(c))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" (%d)", len(groups[c]))))
		b.WriteString("\n")
		for _, a := range groups[c] {
			style, ok := statusStyle[a.ImplementationStatus]
			if !ok {
				style = dimStyle
			}
			fmt.Fprintf(&b, "  %-26s %s %s\n",
				a.TaskType,
				style.Render(fmt.Sprintf("%-11s", a.ImplementationStatus)),
				dimStyle.Render(fmt.Sprintf("v%s timeout=%s retries=%d", a.Version, a.Timeout, a.Retries)),
			)
		}
	}
	if b.Len() == 0 {
		return dimStyle.Render("no activities") + "\n"
	}
	return b.String()
}
