// Package tui is the terminal client: a Bubble Tea program over the task
// store, view layer, edit session and reorder controller. Store mutations
// happen synchronously in Update; persistence runs as asynchronous commands
// whose failures roll the store back to the pre-mutation snapshot.
package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasktracker/internal/app/session"
	"tasktracker/internal/app/store"
	"tasktracker/internal/app/view"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
	"tasktracker/pkg/uierrors"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeSearch
	modeConfirmClearAll
	modeLogin
	modeRegister
)

const persistTimeout = 15 * time.Second

// Auth abstracts the login/register collaborator so the model can run
// without a network in local and memory modes.
type Auth interface {
	Login(ctx context.Context, email, password string) (token string, err error)
	Register(ctx context.Context, username, email, password string) (token string, err error)
}

type Model struct {
	store   *store.Store
	sess    *session.Session
	params  view.Params
	persist ports.TaskPersistence
	creds   ports.CredentialStore // nil outside remote mode
	auth    Auth                  // nil outside remote mode
	lang    string

	mode      mode
	cursor    int
	displayed []*domain.Task
	buckets   []view.Bucket

	form        taskForm
	authForm    authForm
	searchInput textinput.Model

	status    string
	fieldErrs map[string]string

	styles Styles
	theme  string
	width  int
	height int

	loggedIn bool
	quitting bool
}

type Options struct {
	Store   *store.Store
	Session *session.Session
	Persist ports.TaskPersistence
	Creds   ports.CredentialStore
	Auth    Auth
	Lang    string
	Theme   string
}

func New(opts Options) *Model {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 128
	search.Width = 30

	m := &Model{
		store:       opts.Store,
		sess:        opts.Session,
		persist:     opts.Persist,
		creds:       opts.Creds,
		auth:        opts.Auth,
		lang:        opts.Lang,
		theme:       opts.Theme,
		styles:      newStyles(opts.Theme),
		params:      view.Params{Filter: view.FilterAll},
		searchInput: search,
		mode:        modeList,
	}

	if m.auth != nil {
		token := ""
		if m.creds != nil {
			token, _ = m.creds.Token()
		}
		if token == "" {
			m.mode = modeLogin
			m.authForm = newLoginForm()
		} else {
			m.loggedIn = true
		}
	} else {
		m.loggedIn = true
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	if m.loggedIn {
		return m.loadTasksCmd()
	}
	return textinput.Blink
}

// refresh recomputes the displayed sequence and clamps the cursor.
func (m *Model) refresh() {
	tasks := m.store.Tasks()
	if m.params.GroupByDueDate {
		m.buckets = view.DeriveGroups(tasks, m.params)
		flat := make([]*domain.Task, 0, len(tasks))
		for _, b := range m.buckets {
			flat = append(flat, b.Tasks...)
		}
		m.displayed = flat
	} else {
		m.buckets = nil
		m.displayed = view.Derive(tasks, m.params)
	}
	if m.cursor >= len(m.displayed) {
		m.cursor = len(m.displayed) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) localize(key string) string {
	return uierrors.Localize(key, m.lang)
}

// Messages.

type tasksLoadedMsg struct {
	tasks []domain.Task
	err   error
}

type persistDoneMsg struct {
	snap store.Snapshot
	err  error
}

type createDoneMsg struct {
	provisionalID int64
	canonical     domain.Task
	snap          store.Snapshot
	err           error
}

type authDoneMsg struct {
	token string
	err   error
}

type clipboardDoneMsg struct{ err error }

// ReminderMsg carries a due-date summary pushed in by the cron scheduler.
type ReminderMsg struct{ Summary string }

// Commands.

func (m *Model) loadTasksCmd() tea.Cmd {
	persist := m.persist
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		tasks, err := persist.List(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

// persistCmd runs one persistence side effect; the snapshot rides along so a
// failure can rewind the optimistic mutation.
func (m *Model) persistCmd(snap store.Snapshot, op func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		return persistDoneMsg{snap: snap, err: op(ctx)}
	}
}

func (m *Model) createCmd(snap store.Snapshot, task domain.Task) tea.Cmd {
	persist := m.persist
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		canonical, err := persist.Create(ctx, task)
		return createDoneMsg{provisionalID: task.ID, canonical: canonical, snap: snap, err: err}
	}
}

func (m *Model) saveOrderCmd(snap store.Snapshot) tea.Cmd {
	ids := m.store.IDs()
	persist := m.persist
	return m.persistCmd(snap, func(ctx context.Context) error {
		return persist.SaveOrder(ctx, ids)
	})
}

func (m *Model) copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardDoneMsg{err: clipboard.WriteAll(text)}
	}
}
