package main

import "github.com/charmbracelet/lipgloss"

var (
	labelStyle = lipgloss.NewStyle().Faint(true)
	dateStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	yesStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	noStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)
