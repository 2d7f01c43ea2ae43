package tui

import (
	"fmt"
	"strings"

	"tasktracker/internal/app/view"
	"tasktracker/internal/core/domain"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.mode {
	case modeLogin, modeRegister:
		return m.viewAuth()
	case modeAdd, modeEdit:
		return m.viewForm()
	}
	return m.viewList()
}

func (m *Model) viewList() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Task Tracker"))
	b.WriteString("  ")
	b.WriteString(m.viewTabs())
	b.WriteString("\n")
	b.WriteString(m.viewProgress())
	b.WriteString("\n\n")

	if m.mode == modeSearch {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	} else if m.params.Search != "" {
		b.WriteString(m.styles.Dim.Render(fmt.Sprintf("search: %q", m.params.Search)))
		b.WriteString("\n\n")
	}

	m.refreshForView()
	if len(m.displayed) == 0 {
		b.WriteString(m.styles.Dim.Render("Nothing here. Press 'a' to add a task."))
		b.WriteString("\n")
	} else if m.params.GroupByDueDate {
		row := 0
		for _, bucket := range m.buckets {
			b.WriteString(m.styles.BucketHeader.Render(bucket.Label))
			b.WriteString("\n")
			for _, t := range bucket.Tasks {
				b.WriteString(m.viewTaskLine(t, row == m.cursor))
				row++
			}
			b.WriteString("\n")
		}
	} else {
		for i, t := range m.displayed {
			b.WriteString(m.viewTaskLine(t, i == m.cursor))
		}
	}

	if m.mode == modeConfirmClearAll {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("Delete ALL tasks? This cannot be undone. (y/N)"))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "a add · e edit · space toggle · d delete · J/K move · / search · s sort · g group · 1/2/3 filter · c clear done · C clear all · y copy · t theme"
	if m.auth != nil {
		help += " · L logout"
	}
	help += " · q quit"
	b.WriteString(m.styles.Help.Render(help))
	b.WriteString("\n")
	return b.String()
}

// refreshForView keeps the displayed slice in sync when View is called
// before any key has been handled (e.g. right after initial load).
func (m *Model) refreshForView() {
	if m.displayed == nil {
		m.refresh()
	}
}

func (m *Model) viewTabs() string {
	render := func(f view.Filter, label string) string {
		if m.params.Filter == f {
			return m.styles.TabActive.Render(label)
		}
		return m.styles.TabInactive.Render(label)
	}
	tabs := render(view.FilterAll, "All") + render(view.FilterActive, "Active") + render(view.FilterCompleted, "Completed")
	if m.params.Sort != view.SortNone {
		dir := "A→Z"
		if m.params.Sort == view.SortDescending {
			dir = "Z→A"
		}
		tabs += m.styles.Dim.Render(" sort:" + dir)
	}
	if m.params.GroupByDueDate {
		tabs += m.styles.Dim.Render(" grouped")
	}
	return tabs
}

func (m *Model) viewProgress() string {
	ratio := view.CompletionRatio(m.store.Tasks())
	const width = 24
	filled := int(ratio*width + 0.5)
	bar := m.styles.ProgressFill.Render(strings.Repeat("█", filled)) +
		m.styles.ProgressRest.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3.0f%% done", bar, ratio*100)
}

func (m *Model) viewTaskLine(t *domain.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = m.styles.Cursor.Render("> ")
	}

	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	title := t.Title
	style := m.styles.Normal
	if t.Completed {
		style = m.styles.Done
	}

	var meta []string
	if t.Priority != domain.PriorityNone {
		meta = append(meta, m.styles.priority(t.Priority).Render(string(t.Priority)))
	}
	if t.DueDate != nil && !m.params.GroupByDueDate {
		meta = append(meta, m.styles.Dim.Render("due "+t.DueDate.Format("2006-01-02")))
	}
	if t.Description != "" {
		meta = append(meta, m.styles.Dim.Render(t.Description))
	}

	line := cursor + check + " " + style.Render(title)
	if len(meta) > 0 {
		line += "  " + strings.Join(meta, " · ")
	}
	return line + "\n"
}

func (m *Model) viewForm() string {
	var b strings.Builder
	heading := "Add Task"
	if m.form.editing {
		heading = "Edit Task"
	}
	b.WriteString(m.styles.Title.Render(heading))
	b.WriteString("\n\n")

	fields := []string{domain.FieldTitle, "", domain.FieldDueDate, domain.FieldPriority}
	for i, in := range m.form.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
		if fields[i] != "" {
			if msg, ok := m.fieldErrs[fields[i]]; ok {
				b.WriteString(m.styles.Error.Render("  " + msg))
				b.WriteString("\n")
			}
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("tab/enter next field · enter on last field saves · esc cancels"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) viewAuth() string {
	var b strings.Builder
	heading := "Login"
	other := "register"
	if m.authForm.register {
		heading = "Register"
		other = "login"
	}
	b.WriteString(m.styles.Title.Render(heading))
	b.WriteString("\n\n")

	for i, in := range m.authForm.inputs {
		b.WriteString(m.styles.Dim.Render(m.authForm.labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(fmt.Sprintf("tab next field · enter submits · ctrl+r switch to %s · ctrl+c quits", other)))
	b.WriteString("\n")
	return b.String()
}
