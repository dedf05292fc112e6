package config_test

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"KeyContacts", config.KeyContacts},
		{"KeyDarkMode", config.KeyDarkMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestPersistedKeys_Stable pins the storage contract.
func TestPersistedKeys_Stable(t *testing.T) {
	assert.Equal(t, "contacts", config.KeyContacts)
	assert.Equal(t, "darkMode", config.KeyDarkMode)
}

func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Contacts/"), "UserAgent must start with AppName/")
}

// TestValidationPatterns_Compile guards against typos in the regex constants.
func TestValidationPatterns_Compile(t *testing.T) {
	_, err := regexp.Compile(config.PatternEmail)
	require.NoError(t, err)
	_, err = regexp.Compile(config.PatternPhone)
	require.NoError(t, err)
}

// TestValidationMessageKeys_Complete checks that each canonical message is translatable.
func TestValidationMessageKeys_Complete(t *testing.T) {
	for _, msg := range []string{
		config.MsgNameRequired,
		config.MsgEmailRequired,
		config.MsgEmailInvalid,
		config.MsgPhoneRequired,
		config.MsgPhoneInvalid,
	} {
		assert.NotEmpty(t, config.ValidationMessageKeys[msg], "missing translation key for %q", msg)
	}
}

func TestGroupOther_SortsBeforeLetters(t *testing.T) {
	assert.Less(t, config.GroupOther, "A")
}

func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")

	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
	assert.Less(t, int64(config.MaxHTTPResponseSize), int64(1*1024*1024*1024), "MaxHTTPResponseSize should stay under 1GB to protect RAM")
	assert.Less(t, config.MinPort, config.MaxPort)
}
