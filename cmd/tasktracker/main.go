package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tasktracker/internal/adapter/local"
	"tasktracker/internal/adapter/memory"
	"tasktracker/internal/adapter/remote"
	"tasktracker/internal/app/reminder"
	"tasktracker/internal/app/session"
	"tasktracker/internal/app/store"
	"tasktracker/internal/config"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
	"tasktracker/internal/tui"
	"tasktracker/pkg/translator"
)

var Version = "dev"

func main() {
	cfg := config.LoadConfig()

	rootCmd := &cobra.Command{
		Use:     "tasktracker",
		Short:   "Terminal task tracker with local or remote persistence",
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}
	rootCmd.Flags().StringVar(&cfg.StorageMode, "storage", cfg.StorageMode, "storage backend: local, remote or memory")
	rootCmd.Flags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite database path (local storage)")
	rootCmd.Flags().StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "task API base URL (remote storage)")
	rootCmd.Flags().StringVar(&cfg.Language, "lang", cfg.Language, "message language (en, fr)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger, err := newLogger(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.Init()

	persist, creds, auth, err := buildAdapters(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := persist.Close(); err != nil {
			zap.L().Warn("failed to close persistence", zap.Error(err))
		}
	}()

	rules := domain.Rules{
		RequireDueDate:  cfg.RequireDueDate,
		RequirePriority: cfg.RequirePriority,
	}
	taskStore := store.New(rules)

	model := tui.New(tui.Options{
		Store:   taskStore,
		Session: &session.Session{},
		Persist: persist,
		Creds:   creds,
		Auth:    auth,
		Lang:    cfg.Language,
		Theme:   cfg.Theme,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())

	scheduler, err := reminder.NewScheduler(cfg.ReminderSpec, func() {
		program.Send(tui.ReminderMsg{Summary: reminder.Summary(taskStore.All(), time.Now())})
	})
	if err != nil {
		zap.L().Warn("reminders disabled", zap.Error(err))
	} else {
		scheduler.Start()
		defer scheduler.Stop()
	}

	zap.L().Info("starting task tracker",
		zap.String("storage", cfg.StorageMode),
		zap.String("lang", cfg.Language),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func buildAdapters(cfg *config.Config) (ports.TaskPersistence, ports.CredentialStore, tui.Auth, error) {
	switch cfg.StorageMode {
	case config.StorageRemote:
		creds := remote.NewFileTokenStore(cfg.TokenFile)
		client := remote.NewClient(cfg.APIBaseURL, creds)
		return client, creds, authAdapter{remote.NewAuthClient(cfg.APIBaseURL)}, nil
	case config.StorageMemory:
		return memory.New(), nil, nil, nil
	case config.StorageLocal:
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, nil, nil, fmt.Errorf("create state dir: %w", err)
		}
		db, err := local.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open local storage: %w", err)
		}
		return db, nil, nil, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown storage mode %q", cfg.StorageMode)
	}
}

// authAdapter bridges the remote auth client to the UI's Auth contract.
type authAdapter struct {
	client *remote.AuthClient
}

func (a authAdapter) Login(ctx context.Context, email, password string) (string, error) {
	return a.client.Login(ctx, remote.Credentials{Email: email, Password: password})
}

func (a authAdapter) Register(ctx context.Context, username, email, password string) (string, error) {
	return a.client.Register(ctx, remote.Registration{Username: username, Email: email, Password: password})
}

func newLogger(logFile string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	// The terminal belongs to the UI; logs go to a file instead of stderr.
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return nil, err
		}
		zcfg.OutputPaths = []string{logFile}
		zcfg.ErrorOutputPaths = []string{logFile}
	}
	return zcfg.Build()
}
