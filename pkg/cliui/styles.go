// Package cliui provides terminal styling, step indicators and markdown
// rendering for ores commands.
package cliui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

var (
	SuccessMark = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	FailMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")

	StepStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	KeyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	HeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	WarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	IDStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
)

// Mark returns a ✓ for nil errors or ✗ for non-nil errors.
func Mark(err error) string {
	if err != nil {
		return FailMark
	}
	return SuccessMark
}

// Field is one key/value pair of a summary line.
type Field struct {
	Key   string
	Value any
}

// Summary renders a label followed by styled key=value pairs, e.g.
//
//	response.completed id=resp_123 status=completed
func Summary(label string, fields ...Field) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(label))
	for _, f := range fields {
		sb.WriteByte(' ')
		sb.WriteString(KeyStyle.Render(f.Key))
		sb.WriteString(DimStyle.Render("="))
		sb.WriteString(ValueStyle.Render(fmt.Sprint(f.Value)))
	}
	return sb.String()
}
