package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/peakram/peakram"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	indexStyle = lipgloss.NewStyle().Width(4).Align(lipgloss.Right).PaddingRight(1)
	callStyle  = lipgloss.NewStyle().Width(34)
	numStyle   = lipgloss.NewStyle().Width(20).Align(lipgloss.Right)
)

func render(t *peakram.Table) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(
		indexStyle.Render("#") +
			callStyle.Render("Function_Call") +
			numStyle.Render("Elapsed_Time_sec") +
			numStyle.Render("Total_RAM_Used_MiB") +
			numStyle.Render("Peak_RAM_Used_MiB")))
	b.WriteRune('\n')

	for _, row := range t.Rows {
		b.WriteString(
			indexStyle.Render(fmt.Sprintf("%d", row.Index)) +
				callStyle.Render(row.FunctionCall) +
				numStyle.Render(fmt.Sprintf("%.3f", row.ElapsedTimeSec)) +
				numStyle.Render(fmt.Sprintf("%.1f", row.TotalRAMUsedMiB)) +
				numStyle.Render(fmt.Sprintf("%.1f", row.PeakRAMUsedMiB)))
		b.WriteRune('\n')
	}

	return b.String()
}
