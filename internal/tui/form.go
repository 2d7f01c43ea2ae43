package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasktracker/internal/core/domain"
)

// taskForm is the add/edit form: one text input per editable column.
type taskForm struct {
	inputs  []textinput.Model
	focus   int
	editing bool
}

const (
	formTitle = iota
	formDescription
	formDueDate
	formPriority
	formFieldCount
)

func newTaskForm() taskForm {
	f := taskForm{inputs: make([]textinput.Model, formFieldCount)}
	for i := range f.inputs {
		in := textinput.New()
		in.CharLimit = 255
		in.Width = 40
		f.inputs[i] = in
	}
	f.inputs[formTitle].Placeholder = "Title"
	f.inputs[formDescription].Placeholder = "Description"
	f.inputs[formDueDate].Placeholder = "Due date (2006-01-02)"
	f.inputs[formPriority].Placeholder = "Priority (low/medium/high)"
	f.inputs[formTitle].Focus()
	return f
}

func editForm(d domain.Draft) taskForm {
	f := newTaskForm()
	f.editing = true
	f.inputs[formTitle].SetValue(d.Title)
	f.inputs[formDescription].SetValue(d.Description)
	if d.DueDate != nil {
		f.inputs[formDueDate].SetValue(d.DueDate.Format("2006-01-02"))
	}
	f.inputs[formPriority].SetValue(string(d.Priority))
	return f
}

func (f *taskForm) next() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *taskForm) prev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// draft converts the form fields into a candidate draft. A malformed due
// date is reported with the field name so it renders inline like any other
// validation problem.
func (f *taskForm) draft(completed bool) (domain.Draft, string) {
	d := domain.Draft{
		Title:       f.inputs[formTitle].Value(),
		Description: strings.TrimSpace(f.inputs[formDescription].Value()),
		Priority:    domain.Priority(strings.ToLower(strings.TrimSpace(f.inputs[formPriority].Value()))),
		Completed:   completed,
	}
	raw := strings.TrimSpace(f.inputs[formDueDate].Value())
	if raw != "" {
		due, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return d, domain.FieldDueDate
		}
		d.DueDate = &due
	}
	return d, ""
}

// authForm is the login/register form.
type authForm struct {
	inputs   []textinput.Model
	labels   []string
	focus    int
	register bool
}

func newLoginForm() authForm {
	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 128
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.Width = 40
	password.EchoMode = textinput.EchoPassword

	return authForm{
		inputs: []textinput.Model{email, password},
		labels: []string{"Email", "Password"},
	}
}

func newRegisterForm() authForm {
	username := textinput.New()
	username.Placeholder = "Name"
	username.CharLimit = 128
	username.Width = 40
	username.Focus()

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 128
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.Width = 40
	password.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "Confirm Password"
	confirm.CharLimit = 128
	confirm.Width = 40
	confirm.EchoMode = textinput.EchoPassword

	return authForm{
		inputs:   []textinput.Model{username, email, password, confirm},
		labels:   []string{"Name", "Email", "Password", "Confirm Password"},
		register: true,
	}
}

func (f *authForm) next() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *authForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *authForm) values() []string {
	out := make([]string, len(f.inputs))
	for i := range f.inputs {
		out[i] = strings.TrimSpace(f.inputs[i].Value())
	}
	return out
}
