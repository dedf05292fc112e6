package contacts

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tartampluch/go-contacts/internal/config"
)

// ErrContactNotFound is returned by Update when no contact carries the given ID.
var ErrContactNotFound = errors.New(config.ErrContactNotFound)

// KeyValueStore is the durable string map the store persists to.
// fyne.Preferences satisfies it.
type KeyValueStore interface {
	String(key string) string
	SetString(key, value string)
}

// ImportReport summarizes a bulk import.
type ImportReport struct {
	Added   int
	Skipped int
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithIDGenerator replaces the UUID generator, mainly for tests.
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *Store) { s.newID = gen }
}

// WithDefaults replaces the bundled dataset used when nothing valid is persisted.
func WithDefaults(defaults func() []Contact) StoreOption {
	return func(s *Store) { s.defaults = defaults }
}

// Store is the authoritative, ordered contact collection (newest first).
// Every successful mutation re-serializes the whole collection to the
// KeyValueStore before returning.
type Store struct {
	mu        sync.RWMutex
	kv        KeyValueStore
	contacts  []Contact
	newID     func() string
	defaults  func() []Contact
	listeners []func([]Contact)
	log       *slog.Logger
}

// NewStore creates an empty store bound to kv. Call Initialize before use.
func NewStore(kv KeyValueStore, opts ...StoreOption) *Store {
	s := &Store{
		kv:       kv,
		newID:    uuid.NewString,
		defaults: DefaultContacts,
		log:      slog.With(config.LogKeyComponent, config.CompStore),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted collection, falling back to the bundled
// defaults when the key is missing or malformed. Loaded data is trusted and
// not re-validated.
func (s *Store) Initialize() []Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := s.kv.String(config.KeyContacts)
	if raw != "" {
		var loaded []Contact
		err := json.Unmarshal([]byte(raw), &loaded)
		if err == nil && loaded != nil {
			s.contacts = loaded
			s.log.Info(config.MsgStoreLoaded, config.LogKeyCount, len(loaded))
			return s.snapshot()
		}
		if err == nil {
			err = errors.New("null collection")
		}
		s.log.Warn(config.ErrContactsDecode, config.LogKeyError, err)
	}

	s.contacts = s.defaults()
	s.log.Info(config.MsgStoreDefaults, config.LogKeyCount, len(s.contacts))
	return s.snapshot()
}

// OnChange registers fn to be called with a snapshot after every save.
func (s *Store) OnChange(fn func([]Contact)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Contacts returns a copy of the collection in store order.
func (s *Store) Contacts() []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Get returns the contact with the given id.
func (s *Store) Get(id string) (Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.contacts[i], true
	}
	return Contact{}, false
}

// Add validates c, assigns a fresh ID and prepends the new contact.
func (s *Store) Add(c Candidate) (Contact, error) {
	if errs := Validate(c); errs != nil {
		return Contact{}, &ValidationError{Fields: errs}
	}

	s.mu.Lock()
	contact := Contact{
		ID:         s.newID(),
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		IsFavorite: c.IsFavorite,
	}
	s.contacts = append([]Contact{contact}, s.contacts...)
	snap := s.saveLocked()
	s.mu.Unlock()

	s.log.Info(config.MsgContactAdded, config.LogKeyID, contact.ID)
	s.notify(snap)
	return contact, nil
}

// Update replaces the contact whose ID matches c.ID.
func (s *Store) Update(c Contact) error {
	if errs := Validate(c.Candidate()); errs != nil {
		return &ValidationError{Fields: errs}
	}

	s.mu.Lock()
	i := s.indexOf(c.ID)
	if i < 0 {
		s.mu.Unlock()
		return ErrContactNotFound
	}
	s.contacts[i] = c
	snap := s.saveLocked()
	s.mu.Unlock()

	s.log.Info(config.MsgContactUpdated, config.LogKeyID, c.ID)
	s.notify(snap)
	return nil
}

// Delete removes the contact with the given id. Unknown ids are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.contacts = append(s.contacts[:i:i], s.contacts[i+1:]...)
	snap := s.saveLocked()
	s.mu.Unlock()

	s.log.Info(config.MsgContactDeleted, config.LogKeyID, id)
	s.notify(snap)
}

// ToggleFavorite flips IsFavorite on the matching contact and reports
// whether one was found.
func (s *Store) ToggleFavorite(id string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.contacts[i].IsFavorite = !s.contacts[i].IsFavorite
	fav := s.contacts[i].IsFavorite
	snap := s.saveLocked()
	s.mu.Unlock()

	s.log.Info(config.MsgFavToggled, config.LogKeyID, id, config.LogKeyFavorite, fav)
	s.notify(snap)
	return true
}

// Import admits every valid candidate whose email is not already present.
// Accepted contacts are prepended as one batch in their original order and
// the collection is saved once.
func (s *Store) Import(candidates []Candidate) ImportReport {
	var report ImportReport

	s.mu.Lock()
	seen := make(map[string]bool, len(s.contacts)+len(candidates))
	for _, c := range s.contacts {
		seen[strings.ToLower(c.Email)] = true
	}

	batch := make([]Contact, 0, len(candidates))
	for _, c := range candidates {
		if errs := Validate(c); errs != nil {
			report.Skipped++
			s.log.Debug(config.MsgImportSkipped, config.LogKeyName, c.Name, config.LogKeyReason, (&ValidationError{Fields: errs}).Error())
			continue
		}
		key := strings.ToLower(c.Email)
		if seen[key] {
			report.Skipped++
			s.log.Debug(config.MsgImportSkipped, config.LogKeyName, c.Name, config.LogKeyReason, "duplicate email")
			continue
		}
		seen[key] = true
		batch = append(batch, Contact{
			ID:         s.newID(),
			Name:       c.Name,
			Email:      c.Email,
			Phone:      c.Phone,
			IsFavorite: c.IsFavorite,
		})
	}
	report.Added = len(batch)

	if report.Added == 0 {
		s.mu.Unlock()
		return report
	}
	s.contacts = append(batch, s.contacts...)
	snap := s.saveLocked()
	s.mu.Unlock()

	s.log.Info(config.MsgContactAdded, config.LogKeyAdded, report.Added, config.LogKeySkipped, report.Skipped)
	s.notify(snap)
	return report
}

// Reset replaces the collection with the bundled defaults and saves it.
func (s *Store) Reset() []Contact {
	s.mu.Lock()
	s.contacts = s.defaults()
	snap := s.saveLocked()
	s.mu.Unlock()

	s.log.Info(config.MsgStoreReset, config.LogKeyCount, len(snap))
	s.notify(snap)
	return snap
}

// saveLocked serializes the full collection. The caller holds s.mu.
func (s *Store) saveLocked() []Contact {
	snap := s.snapshot()
	data, err := json.Marshal(snap)
	if err != nil {
		s.log.Error(config.ErrContactsEncode, config.LogKeyError, err)
		return snap
	}
	s.kv.SetString(config.KeyContacts, string(data))
	s.log.Debug(config.MsgStoreSaved, config.LogKeyCount, len(snap), config.LogKeySizeBytes, len(data))
	return snap
}

func (s *Store) notify(snap []Contact) {
	s.mu.RLock()
	listeners := make([]func([]Contact), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// snapshot returns a non-nil copy of the collection. The caller holds s.mu.
func (s *Store) snapshot() []Contact {
	out := make([]Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

func (s *Store) indexOf(id string) int {
	for i, c := range s.contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// LoadDarkMode reports the persisted theme preference.
func LoadDarkMode(kv KeyValueStore) bool {
	return kv.String(config.KeyDarkMode) == config.BoolTrue
}

// SaveDarkMode persists the theme preference as "true" or "false".
func SaveDarkMode(kv KeyValueStore, dark bool) {
	value := config.BoolFalse
	if dark {
		value = config.BoolTrue
	}
	kv.SetString(config.KeyDarkMode, value)
}
