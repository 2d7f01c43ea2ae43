package uierrors_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tasktracker/internal/core/domain"
	"tasktracker/pkg/translator"
	"tasktracker/pkg/uierrors"
)

func TestMain(m *testing.M) {
	translator.Init()
	os.Exit(m.Run())
}

func TestLocalizeTranslatesPerLanguage(t *testing.T) {
	require.Equal(t, "Title is required.", uierrors.Localize(domain.MsgTitleRequired, translator.LanguageEn))
	require.Equal(t, "Le titre est obligatoire.", uierrors.Localize(domain.MsgTitleRequired, translator.LanguageFr))
}

func TestLocalizeFallsBackToKey(t *testing.T) {
	require.Equal(t, "noSuchKey", uierrors.Localize("noSuchKey", translator.LanguageEn))
}

func TestFieldMessages(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	past := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	err := domain.Validate(domain.Draft{Title: "  ", DueDate: &past}, domain.Rules{}, now)
	require.Error(t, err)
	verr, ok := err.(*domain.ValidationError)
	require.True(t, ok)

	msgs := uierrors.FieldMessages(verr, translator.LanguageEn)
	require.Equal(t, "Title is required.", msgs[domain.FieldTitle])
	require.Equal(t, "Due date cannot be in the past.", msgs[domain.FieldDueDate])
}
