package translator

import (
	"embed"
	"io/fs"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed translation/*.toml
var translationFS embed.FS

var Translator *i18n.Bundle

const (
	LanguageEn = "en"
	LanguageFr = "fr"
	// Add more language constants as needed.
)

// Init loads every embedded translation file into the bundle. Messages are
// compiled into the binary so a single executable works anywhere.
func Init() {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := fs.ReadDir(translationFS, "translation")
	if err != nil {
		zap.L().Error("failed to list embedded translations", zap.Error(err))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := path.Join("translation", entry.Name())
		raw, err := translationFS.ReadFile(name)
		if err != nil {
			zap.L().Warn("failed to read translation file", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		if _, err := Translator.ParseMessageFileBytes(raw, name); err != nil {
			zap.L().Warn("failed to parse translation file", zap.String("file", entry.Name()), zap.Error(err))
		}
	}
}
