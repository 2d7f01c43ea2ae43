// Package uierrors resolves message keys into translated, user-facing text.
package uierrors

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"

	"tasktracker/internal/core/domain"
	"tasktracker/pkg/translator"
)

// Localize retrieves the translated message for msgKey, falling back to the
// key itself when no translation exists.
func Localize(msgKey, lang string) string {
	l := i18n.NewLocalizer(translator.Translator, lang, translator.LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: msgKey})
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}

// FieldMessages translates a validation error into field → message text for
// inline display next to the offending form inputs.
func FieldMessages(verr *domain.ValidationError, lang string) map[string]string {
	out := make(map[string]string, len(verr.Fields))
	for field, key := range verr.ByField() {
		out[field] = Localize(key, lang)
	}
	return out
}
