package main

import (
	"fmt"
	"strings"

	"coinduct/internal/rel"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent      = lipgloss.Color("#8BC34A")
	destructive = lipgloss.Color("#e53935")
	muted       = lipgloss.Color("#6b7280")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	okStyle    = lipgloss.NewStyle().Foreground(accent)
	failStyle  = lipgloss.NewStyle().Foreground(destructive)
	mutedStyle = lipgloss.NewStyle().Foreground(muted)
	labelStyle = lipgloss.NewStyle().Width(22)
)

func status(ok bool) string {
	if ok {
		return okStyle.Render("ok")
	}
	return failStyle.Render("FAILED")
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

// members renders the tuples of r, or "∅".
func members(s *rel.Space, r rel.Rel) string {
	ts := s.Members(r)
	if len(ts) == 0 {
		return mutedStyle.Render("∅")
	}
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func printTitle(format string, args ...any) {
	fmt.Println(titleStyle.Render(fmt.Sprintf(format, args...)))
}
