package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/config"
)

// usedKeys lists every translation key referenced from Go code.
var usedKeys = []string{
	config.TKeyWinTitle,
	config.TKeyWinSettings,
	config.TKeySearchHint,
	config.TKeyBtnAdd,
	config.TKeyBtnSave,
	config.TKeyBtnCancel,
	config.TKeyBtnImport,
	config.TKeyBtnImportFile,
	config.TKeyBtnExport,
	config.TKeyBtnSettings,
	config.TKeyBtnBrowse,
	config.TKeyBtnDarkMode,
	config.TKeyBtnLightMode,
	config.TKeyCountContacts,
	config.TKeyEmptyTitle,
	config.TKeyEmptyHint,
	config.TKeyNoMatches,
	config.TKeyDlgAddTitle,
	config.TKeyDlgAddSubtitle,
	config.TKeyDlgEditTitle,
	config.TKeyDlgDelTitle,
	config.TKeyDlgDelMsg,
	config.TKeyLblName,
	config.TKeyLblEmail,
	config.TKeyLblPhone,
	config.TKeyLblFavorite,
	config.TKeyHintName,
	config.TKeyHintEmail,
	config.TKeyHintPhone,
	config.TKeyLblLanguage,
	config.TKeyHelpLanguage,
	config.TKeyLblPort,
	config.TKeyHelpPort,
	config.TKeyLblGeneral,
	config.TKeyLblSource,
	config.TKeyModeCardDAV,
	config.TKeyModeLocal,
	config.TKeyLblURL,
	config.TKeyHelpURL,
	config.TKeyLblUser,
	config.TKeyLblPass,
	config.TKeyLblFooter,
	config.TKeyImportResult,
	config.TKeyImportFailed,
	config.TKeyExportDone,
	config.TKeyMenuSource,
	config.TKeyErrNameReq,
	config.TKeyErrEmailReq,
	config.TKeyErrEmailFormat,
	config.TKeyErrPhoneReq,
	config.TKeyErrPhoneFormat,
	config.TKeyErrPortReq,
	config.TKeyErrPortNum,
	config.TKeyErrPortRange,
}

func loadLocale(t *testing.T, lang string) map[string]interface{} {
	t.Helper()

	name := "active." + lang + ".json"
	content, err := os.ReadFile(filepath.Join("locales", name))
	if os.IsNotExist(err) {
		content, err = os.ReadFile(filepath.Join("..", "..", "internal", "ui", "locales", name))
	}
	require.NoError(t, err, "Must load %s", name)

	var jsonMap map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &jsonMap), "%s must be valid JSON", name)
	return jsonMap
}

// TestI18nIntegrity ensures every key used in code exists in every locale.
func TestI18nIntegrity(t *testing.T) {
	defined := make(map[string]bool, len(usedKeys))
	for _, k := range usedKeys {
		defined[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			jsonMap := loadLocale(t, lang)

			for key := range defined {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' is missing in active.%s.json", key, lang)
			}

			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				if !defined[jsonKey] {
					t.Logf("Warning: Key '%s' exists in JSON but is not checked in the test suite (might be unused)", jsonKey)
				}
			}
		})
	}
}

// TestI18nPluralForms checks counted messages carry plural variants.
func TestI18nPluralForms(t *testing.T) {
	for _, lang := range config.SupportedLanguages {
		jsonMap := loadLocale(t, lang)
		for _, key := range []string{config.TKeyCountContacts, config.TKeyExportDone} {
			forms, ok := jsonMap[key].(map[string]interface{})
			require.Truef(t, ok, "%s in %s must be a plural object", key, lang)
			assert.Contains(t, forms, "one")
			assert.Contains(t, forms, "other")
		}
	}
}

// TestI18nValidationMessages keeps the English error strings identical to
// the canonical validation messages.
func TestI18nValidationMessages(t *testing.T) {
	en := loadLocale(t, "en")
	for msg, key := range config.ValidationMessageKeys {
		assert.Equal(t, msg, en[key], "English text for %s must match the validator", key)
	}
}
