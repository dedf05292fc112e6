package contacts

import (
	_ "embed"
	"log/slog"

	"github.com/tartampluch/go-contacts/internal/config"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// DefaultContacts decodes the bundled dataset. Each call returns a fresh slice.
func DefaultContacts() []Contact {
	var out []Contact
	if err := yaml.Unmarshal(defaultsYAML, &out); err != nil {
		slog.Error(config.ErrDefaultsLoad,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyError, err)
		return []Contact{}
	}
	if out == nil {
		return []Contact{}
	}
	return out
}
