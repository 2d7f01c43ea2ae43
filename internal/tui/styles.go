package tui

import (
	"github.com/charmbracelet/lipgloss"

	"tasktracker/internal/core/domain"
)

// Styles is a resolved theme palette. Two palettes mirror the original
// client's light/dark toggle.
type Styles struct {
	Title        lipgloss.Style
	TabActive    lipgloss.Style
	TabInactive  lipgloss.Style
	Cursor       lipgloss.Style
	Normal       lipgloss.Style
	Done         lipgloss.Style
	Dim          lipgloss.Style
	Error        lipgloss.Style
	Status       lipgloss.Style
	BucketHeader lipgloss.Style
	ProgressFill lipgloss.Style
	ProgressRest lipgloss.Style
	PriorityHigh lipgloss.Style
	PriorityMed  lipgloss.Style
	PriorityLow  lipgloss.Style
	Help         lipgloss.Style
}

func newStyles(theme string) Styles {
	dark := theme != "light"

	fg := lipgloss.Color("235")
	dim := lipgloss.Color("245")
	if dark {
		fg = lipgloss.Color("252")
		dim = lipgloss.Color("243")
	}

	return Styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		TabActive:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("27")).Padding(0, 1),
		TabInactive:  lipgloss.NewStyle().Foreground(dim).Padding(0, 1),
		Cursor:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Normal:       lipgloss.NewStyle().Foreground(fg),
		Done:         lipgloss.NewStyle().Foreground(dim).Strikethrough(true),
		Dim:          lipgloss.NewStyle().Foreground(dim),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		BucketHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		ProgressFill: lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		ProgressRest: lipgloss.NewStyle().Foreground(dim),
		PriorityHigh: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		PriorityMed:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		PriorityLow:  lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		Help:         lipgloss.NewStyle().Foreground(dim),
	}
}

func (s Styles) priority(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return s.PriorityHigh
	case domain.PriorityMedium:
		return s.PriorityMed
	case domain.PriorityLow:
		return s.PriorityLow
	}
	return s.Dim
}
