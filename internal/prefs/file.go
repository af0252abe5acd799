package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// User is the user-specific data removed by ClearUserData.
type User struct {
	AccountID   string    `yaml:"account_id"`
	DisplayName string    `yaml:"display_name,omitempty"`
	SessionID   string    `yaml:"session_id"`
	SignedInAt  time.Time `yaml:"signed_in_at"`
}

// SignInRequest describes a new session.
type SignInRequest struct {
	AccountID   string
	DisplayName string
	Token       string
}

var accountIDPattern = regexp.MustCompile(`^\S+$`)

// Validate checks the request before anything is stored.
func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AccountID,
			validation.Required,
			validation.Length(1, 128),
			validation.Match(accountIDPattern).Error("must not contain whitespace"),
		),
		validation.Field(&r.DisplayName, validation.Length(0, 128)),
		validation.Field(&r.Token, validation.Required),
	)
}

type document struct {
	Settings map[string]any `yaml:"settings"`
	User     *User          `yaml:"user,omitempty"`
}

// FileStore is a Store backed by a YAML file. Every write rewrites the
// whole file. Session credentials go to a Vault, never to the file.
type FileStore struct {
	mu    sync.Mutex
	path  string
	doc   document
	vault Vault

	defaultLanguage string
	logger          *log.Logger
	now             func() time.Time
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithVault sets where session credentials are kept. Defaults to NopVault.
func WithVault(v Vault) Option {
	return func(s *FileStore) {
		if v != nil {
			s.vault = v
		}
	}
}

// WithDefaultLanguage sets the language returned when none is stored.
func WithDefaultLanguage(lang string) Option {
	return func(s *FileStore) {
		if lang != "" {
			s.defaultLanguage = lang
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the sign-in timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) {
		if now != nil {
			s.now = now
		}
	}
}

// Open loads the preferences file at path. A missing file yields an
// empty store; the file is created on the first write.
func Open(path string, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		path:            path,
		vault:           NopVault{},
		defaultLanguage: DefaultLanguage,
		logger:          log.Default(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &s.doc); err != nil {
			return nil, fmt.Errorf("parsing preferences: %w", err)
		}
	}
	if s.doc.Settings == nil {
		s.doc.Settings = make(map[string]any)
	}

	return s, nil
}

// Path returns the preferences file location.
func (s *FileStore) Path() string {
	return s.path
}

// Bool returns the boolean stored under key, or false.
func (s *FileStore) Bool(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, _ := s.doc.Settings[key].(bool)
	return b
}

// String returns the string stored under key. The language key falls
// back to the default language; other keys fall back to "".
func (s *FileStore) String(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if str, ok := s.doc.Settings[key].(string); ok {
		return str
	}
	if key == KeyLanguage {
		return s.defaultLanguage
	}
	return ""
}

// SetBool persists value under key.
func (s *FileStore) SetBool(key string, value bool) error {
	return s.set(key, value)
}

// SetString persists value under key.
func (s *FileStore) SetString(key string, value string) error {
	return s.set(key, value)
}

func (s *FileStore) set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.doc.Settings[key]
	s.doc.Settings[key] = value
	if err := s.save(); err != nil {
		if had {
			s.doc.Settings[key] = prev
		} else {
			delete(s.doc.Settings, key)
		}
		return fmt.Errorf("saving %s: %w", key, err)
	}
	s.logger.Debug("preference saved", "key", key, "value", value)
	return nil
}

// CurrentUser returns the signed-in user, if any.
func (s *FileStore) CurrentUser() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.User == nil {
		return User{}, false
	}
	return *s.doc.User, true
}

// Credential returns the session credential of the signed-in user.
func (s *FileStore) Credential() (string, error) {
	user, ok := s.CurrentUser()
	if !ok {
		return "", ErrNoCredential
	}
	return s.vault.Get(user.AccountID)
}

// SignIn validates req, stores its token in the vault and records a new
// session. A previously signed-in account loses its credential.
func (s *FileStore) SignIn(req SignInRequest) (User, error) {
	if err := req.Validate(); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidSignIn, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.vault.Set(req.AccountID, req.Token); err != nil {
		return User{}, fmt.Errorf("storing credential: %w", err)
	}

	prev := s.doc.User
	user := User{
		AccountID:   req.AccountID,
		DisplayName: req.DisplayName,
		SessionID:   uuid.NewString(),
		SignedInAt:  s.now().UTC().Truncate(time.Second),
	}
	s.doc.User = &user
	if err := s.save(); err != nil {
		s.doc.User = prev
		if prev == nil || prev.AccountID != req.AccountID {
			if delErr := s.vault.Delete(req.AccountID); delErr != nil {
				s.logger.Warn("could not remove unsaved credential", "account", req.AccountID, "error", delErr)
			}
		}
		return User{}, fmt.Errorf("saving session: %w", err)
	}

	if prev != nil && prev.AccountID != user.AccountID {
		if err := s.vault.Delete(prev.AccountID); err != nil {
			s.logger.Warn("could not remove previous credential", "account", prev.AccountID, "error", err)
		}
	}

	s.logger.Info("signed in", "account", user.AccountID, "session", user.SessionID)
	return user, nil
}

// ClearUserData removes the user section and its vault credential.
// Settings are kept. Clearing with nobody signed in succeeds. The file is
// saved before the credential is deleted, so a failed save leaves the
// session and its credential intact.
func (s *FileStore) ClearUserData() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.doc.User
	if user == nil {
		return nil
	}

	s.doc.User = nil
	if err := s.save(); err != nil {
		s.doc.User = user
		return fmt.Errorf("saving preferences: %w", err)
	}

	if err := s.vault.Delete(user.AccountID); err != nil {
		s.logger.Warn("session cleared but credential left in vault", "account", user.AccountID, "error", err)
		return fmt.Errorf("removing credential: %w", err)
	}

	s.logger.Info("user data cleared", "account", user.AccountID)
	return nil
}

// save writes the document atomically. Callers hold s.mu.
func (s *FileStore) save() error {
	data, err := yaml.Marshal(&s.doc)
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating preferences directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("writing preferences: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing preferences: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
