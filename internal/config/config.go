package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	StorageLocal  = "local"
	StorageRemote = "remote"
	StorageMemory = "memory"
)

type Config struct {
	StorageMode     string
	DBPath          string
	APIBaseURL      string
	TokenFile       string
	Language        string
	Theme           string
	ReminderSpec    string
	RequireDueDate  bool
	RequirePriority bool
	LogFile         string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		StorageMode:     getEnv("TASKS_STORAGE", StorageLocal),
		DBPath:          getEnv("TASKS_DB_PATH", defaultStatePath("tasks.db")),
		APIBaseURL:      getEnv("TASKS_API_URL", "http://localhost:8080/api"),
		TokenFile:       getEnv("TASKS_TOKEN_FILE", defaultStatePath("token")),
		Language:        getEnv("TASKS_LANG", "en"),
		Theme:           getEnv("TASKS_THEME", "dark"),
		ReminderSpec:    getEnv("TASKS_REMINDER_SPEC", "@every 15m"),
		RequireDueDate:  getEnv("TASKS_REQUIRE_DUE_DATE", "") == "true",
		RequirePriority: getEnv("TASKS_REQUIRE_PRIORITY", "true") == "true",
		LogFile:         getEnv("TASKS_LOG_FILE", defaultStatePath("tasktracker.log")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func defaultStatePath(name string) string {
	base, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(base, "tasktracker", name)
}
