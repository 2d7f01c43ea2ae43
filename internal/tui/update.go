package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tasktracker/internal/app/reorder"
	"tasktracker/internal/app/store"
	"tasktracker/internal/app/view"
	"tasktracker/internal/core/domain"
	"tasktracker/pkg/uierrors"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		if msg.err != nil {
			zap.L().Error("initial load failed", zap.Error(msg.err))
			if errors.Is(msg.err, domain.ErrNotAuthenticated) && m.auth != nil {
				return m.toLogin()
			}
			m.status = m.localize("loadFailed")
			return m, nil
		}
		m.store.Load(msg.tasks)
		m.refresh()
		return m, nil

	case persistDoneMsg:
		if msg.err != nil {
			m.rollback(msg.snap, msg.err)
			if errors.Is(msg.err, domain.ErrNotAuthenticated) && m.auth != nil {
				return m.toLogin()
			}
			// Reload so overlapping in-flight persistence calls cannot leave
			// the restored snapshot behind durable state.
			return m, m.loadTasksCmd()
		}
		return m, nil

	case createDoneMsg:
		if msg.err != nil {
			m.rollback(msg.snap, msg.err)
			if errors.Is(msg.err, domain.ErrNotAuthenticated) && m.auth != nil {
				return m.toLogin()
			}
			return m, m.loadTasksCmd()
		}
		m.store.Adopt(msg.provisionalID, msg.canonical)
		m.refresh()
		return m, nil

	case authDoneMsg:
		if msg.err != nil {
			zap.L().Warn("auth failed", zap.Error(msg.err))
			if m.authForm.register {
				m.status = m.localize("registerFailed")
			} else {
				m.status = m.localize("loginFailed")
			}
			return m, nil
		}
		if m.creds != nil {
			if err := m.creds.SetToken(msg.token); err != nil {
				zap.L().Warn("could not persist token", zap.Error(err))
			}
		}
		m.loggedIn = true
		m.mode = modeList
		m.status = ""
		return m, m.loadTasksCmd()

	case clipboardDoneMsg:
		if msg.err != nil {
			zap.L().Debug("clipboard write failed", zap.Error(msg.err))
		} else {
			m.status = "copied"
		}
		return m, nil

	case ReminderMsg:
		if msg.Summary != "" {
			m.status = msg.Summary
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// rollback restores the pre-mutation snapshot after a failed persistence
// call, keeping memory and durable state reconciled.
func (m *Model) rollback(snap store.Snapshot, err error) {
	m.store.Restore(snap)
	m.refresh()
	m.status = m.localize("persistFailed")
	zap.L().Error("persistence failed, mutation rolled back", zap.Error(err))
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case modeLogin, modeRegister:
		return m.updateAuthMode(msg)
	case modeAdd, modeEdit:
		return m.updateFormMode(msg)
	case modeSearch:
		return m.updateSearchMode(msg)
	case modeConfirmClearAll:
		return m.updateConfirmMode(msg)
	}
	return m.updateListMode(msg)
}

func (m *Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.refresh()
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.displayed)-1 {
			m.cursor++
		}

	case "K":
		return m.moveCursorTask(-1)

	case "J":
		return m.moveCursorTask(1)

	case "1":
		m.params.Filter = view.FilterAll
		m.refresh()
	case "2":
		m.params.Filter = view.FilterActive
		m.refresh()
	case "3":
		m.params.Filter = view.FilterCompleted
		m.refresh()

	case "/":
		m.mode = modeSearch
		m.searchInput.SetValue(m.params.Search)
		m.searchInput.Focus()

	case "s":
		m.params.Sort = (m.params.Sort + 1) % 3
		m.refresh()

	case "g":
		m.params.GroupByDueDate = !m.params.GroupByDueDate
		m.refresh()

	case "a":
		m.mode = modeAdd
		m.form = newTaskForm()
		m.fieldErrs = nil
		m.status = ""

	case "e":
		if t, ok := m.cursorTask(); ok {
			m.sess.Begin(*t)
			m.form = editForm(*m.sess.Draft())
			m.mode = modeEdit
			m.fieldErrs = nil
			m.status = ""
		}

	case " ", "enter":
		if t, ok := m.cursorTask(); ok {
			toggled, snap, err := m.store.ToggleComplete(t.ID)
			if err != nil {
				return m, nil // vanished underneath us, nothing to do
			}
			m.refresh()
			persist := m.persist
			return m, m.persistCmd(snap, func(ctx context.Context) error {
				return persist.Replace(ctx, toggled)
			})
		}

	case "d":
		if t, ok := m.cursorTask(); ok {
			id := t.ID
			snap, removed := m.store.Remove(id)
			if !removed {
				return m, nil
			}
			m.sess.Forget(id)
			m.refresh()
			persist := m.persist
			return m, m.persistCmd(snap, func(ctx context.Context) error {
				return persist.Delete(ctx, id)
			})
		}

	case "c":
		var completedIDs []int64
		for _, t := range m.store.Tasks() {
			if t.Completed {
				completedIDs = append(completedIDs, t.ID)
			}
		}
		snap, cleared := m.store.ClearCompleted()
		if cleared == 0 {
			return m, nil
		}
		m.refresh()
		return m, m.deleteManyCmd(snap, completedIDs)

	case "C":
		if m.store.Len() > 0 {
			m.mode = modeConfirmClearAll
		}

	case "y":
		if t, ok := m.cursorTask(); ok {
			return m, m.copyCmd(t.Title)
		}

	case "t":
		if m.theme == "light" {
			m.theme = "dark"
		} else {
			m.theme = "light"
		}
		m.styles = newStyles(m.theme)

	case "L":
		if m.auth != nil {
			if m.creds != nil {
				_ = m.creds.Clear()
			}
			m.store.Load(nil)
			return m.toLogin()
		}

	case "esc":
		m.params.Search = ""
		m.status = ""
		m.refresh()
	}
	return m, nil
}

// moveCursorTask shifts the task under the cursor one position within the
// displayed sequence, reconciled into canonical order by the reorder
// controller. Disabled while grouping since bucket order is derived.
func (m *Model) moveCursorTask(delta int) (tea.Model, tea.Cmd) {
	if m.params.GroupByDueDate {
		return m, nil
	}
	src := m.cursor
	dst := src + delta
	snap, moved := reorder.Move(m.store, m.displayed, src, dst)
	if !moved {
		return m, nil
	}
	m.cursor = dst
	m.refresh()
	return m, m.saveOrderCmd(snap)
}

func (m *Model) cursorTask() (*domain.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.displayed) {
		return nil, false
	}
	return m.displayed[m.cursor], true
}

func (m *Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.params.Search = m.searchInput.Value()
		m.searchInput.Blur()
		m.mode = modeList
		m.refresh()
		return m, nil
	case "esc":
		m.searchInput.Blur()
		m.mode = modeList
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.params.Search = m.searchInput.Value()
	m.refresh()
	return m, cmd
}

func (m *Model) updateConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = modeList
		ids := m.store.IDs()
		snap, _ := m.store.ClearAll()
		m.sess.Cancel()
		m.refresh()
		return m, m.deleteManyCmd(snap, ids)
	default:
		m.mode = modeList
		return m, nil
	}
}

func (m *Model) updateFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.mode == modeEdit {
			m.sess.Cancel()
		}
		m.mode = modeList
		m.fieldErrs = nil
		return m, nil

	case "tab", "down":
		m.form.next()
		return m, nil

	case "shift+tab", "up":
		m.form.prev()
		return m, nil

	case "enter":
		if m.form.focus < len(m.form.inputs)-1 {
			m.form.next()
			return m, nil
		}
		return m.submitForm()
	}
	return m, m.form.update(msg)
}

func (m *Model) submitForm() (tea.Model, tea.Cmd) {
	completed := false
	if m.mode == modeEdit {
		if d := m.sess.Draft(); d != nil {
			completed = d.Completed
		}
	}
	draft, badField := m.form.draft(completed)
	if badField != "" {
		m.fieldErrs = map[string]string{badField: m.localize("dueDateFormat")}
		return m, nil
	}

	if m.mode == modeEdit {
		*m.sess.Draft() = draft
		task, snap, err := m.sess.Commit(m.store)
		if err != nil {
			m.surfaceValidation(err)
			return m, nil
		}
		m.mode = modeList
		m.fieldErrs = nil
		m.refresh()
		persist := m.persist
		return m, m.persistCmd(snap, func(ctx context.Context) error {
			return persist.Replace(ctx, task)
		})
	}

	task, snap, err := m.store.Add(draft)
	if err != nil {
		m.surfaceValidation(err)
		return m, nil
	}
	m.mode = modeList
	m.fieldErrs = nil
	m.cursor = 0
	m.refresh()
	return m, m.createCmd(snap, task)
}

func (m *Model) surfaceValidation(err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		m.fieldErrs = m.fieldMessages(verr)
		return
	}
	m.status = err.Error()
}

func (m *Model) updateAuthMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.authForm.next()
		return m, nil

	case "ctrl+r":
		if m.mode == modeLogin {
			m.mode = modeRegister
			m.authForm = newRegisterForm()
		} else {
			m.mode = modeLogin
			m.authForm = newLoginForm()
		}
		m.status = ""
		return m, nil

	case "enter":
		if m.authForm.focus < len(m.authForm.inputs)-1 {
			m.authForm.next()
			return m, nil
		}
		return m.submitAuth()
	}
	return m, m.authForm.update(msg)
}

func (m *Model) submitAuth() (tea.Model, tea.Cmd) {
	values := m.authForm.values()
	auth := m.auth

	if m.authForm.register {
		username, email, password, confirm := values[0], values[1], values[2], values[3]
		switch {
		case username == "":
			m.status = m.localize("usernameRequired")
		case email == "":
			m.status = m.localize("emailRequired")
		case password == "":
			m.status = m.localize("passwordRequired")
		case password != confirm:
			m.status = m.localize("passwordsDontMatch")
		default:
			return m, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
				defer cancel()
				token, err := auth.Register(ctx, username, email, password)
				return authDoneMsg{token: token, err: err}
			}
		}
		return m, nil
	}

	email, password := values[0], values[1]
	switch {
	case email == "":
		m.status = m.localize("emailRequired")
	case password == "":
		m.status = m.localize("passwordRequired")
	default:
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
			defer cancel()
			token, err := auth.Login(ctx, email, password)
			return authDoneMsg{token: token, err: err}
		}
	}
	return m, nil
}

func (m *Model) toLogin() (tea.Model, tea.Cmd) {
	m.loggedIn = false
	m.mode = modeLogin
	m.authForm = newLoginForm()
	m.status = m.localize("notAuthenticated")
	return m, textinput.Blink
}

// deleteManyCmd persists a bulk removal as individual deletes against the
// per-task port, stopping at the first failure.
func (m *Model) deleteManyCmd(snap store.Snapshot, ids []int64) tea.Cmd {
	persist := m.persist
	return m.persistCmd(snap, func(ctx context.Context) error {
		for _, id := range ids {
			if err := persist.Delete(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
}

func (m *Model) fieldMessages(verr *domain.ValidationError) map[string]string {
	return uierrors.FieldMessages(verr, m.lang)
}
