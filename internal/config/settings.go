package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings - документ config.yml
type Settings struct {
	General GeneralSettings `yaml:"settings"`
	Formats FormatSettings  `yaml:"formats"`
}

type GeneralSettings struct {
	Debug           bool           `yaml:"debug"`
	Namespace       string         `yaml:"namespace"`
	JoinDelay       time.Duration  `yaml:"join-delay"`
	PermissionDelay time.Duration  `yaml:"permission-delay"`
	GroupDelay      time.Duration  `yaml:"group-change-delay"`
	Debounce        time.Duration  `yaml:"debounce"`
	SaveLock        time.Duration  `yaml:"save-lock"`
	AutoUpdate      ToggleSettings `yaml:"auto-update"`
	AutoReload      ReloadSettings `yaml:"auto-reload"`
	Backend         BackendOptions `yaml:"backend"`
}

type ToggleSettings struct {
	Enabled bool `yaml:"enabled"`
}

type ReloadSettings struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

type BackendOptions struct {
	DeleteOnRemove bool `yaml:"delete-on-remove"`
}

type FormatSettings struct {
	Chat ChatFormat `yaml:"chat"`
	Tab  TabFormat  `yaml:"tab"`
}

type ChatFormat struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"`
}

type TabFormat struct {
	Enabled         bool   `yaml:"enabled"`
	Format          string `yaml:"format"`
	SpaceBeforeName bool   `yaml:"space-before-name"`
}

func DefaultSettings() Settings {
	return Settings{
		General: GeneralSettings{
			Namespace:       "simpleprefix",
			JoinDelay:       time.Second,
			PermissionDelay: 250 * time.Millisecond,
			GroupDelay:      500 * time.Millisecond,
			Debounce:        time.Second,
			SaveLock:        250 * time.Millisecond,
			AutoUpdate:      ToggleSettings{Enabled: true},
			AutoReload:      ReloadSettings{Enabled: true, Interval: 30 * time.Second},
		},
		Formats: FormatSettings{
			Chat: ChatFormat{Enabled: true, Format: "{prefix}{player}{suffix}: {message}"},
			Tab:  TabFormat{Enabled: true, Format: "{prefix}{player}{suffix}", SpaceBeforeName: true},
		},
	}
}

// AffectsDisplay - изменились ли настройки, от которых зависит оформление игроков
func (s Settings) AffectsDisplay(other Settings) bool {
	return s.Formats != other.Formats || s.General.Namespace != other.General.Namespace
}

// WriteMarker помечает запись файла, сделанную самим процессом,
// чтобы наблюдатель не перечитывал его в ответ.
type WriteMarker interface {
	Mark()
	ReleaseAfter(d time.Duration)
}

type SettingsStore struct {
	path   string
	marker WriteMarker

	mu      sync.RWMutex
	current Settings
}

func NewSettingsStore(path string, marker WriteMarker) *SettingsStore {
	return &SettingsStore{
		path:    path,
		marker:  marker,
		current: DefaultSettings(),
	}
}

func (s *SettingsStore) Path() string {
	return s.path
}

// Load читает config.yml; при отсутствии файла создает его со значениями по умолчанию
func (s *SettingsStore) Load() error {
	loaded, err := s.read()
	if errors.Is(err, os.ErrNotExist) {
		s.mu.Lock()
		s.current = DefaultSettings()
		s.mu.Unlock()
		return s.write(DefaultSettings())
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	return nil
}

// Reload перечитывает файл и сообщает, изменилось ли оформление
func (s *SettingsStore) Reload() (bool, error) {
	loaded, err := s.read()
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.current.AffectsDisplay(loaded)
	s.current = loaded
	return changed, nil
}

func (s *SettingsStore) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update применяет изменение и переписывает файл целиком
func (s *SettingsStore) Update(fn func(*Settings)) error {
	s.mu.Lock()
	next := s.current
	fn(&next)
	s.current = next
	s.mu.Unlock()

	return s.write(next)
}

func (s *SettingsStore) read() (Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Settings{}, err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(s.path), err)
	}
	return settings, nil
}

func (s *SettingsStore) write(settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if s.marker != nil {
		s.marker.Mark()
		defer s.marker.ReleaseAfter(settings.General.SaveLock)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(s.path), err)
	}
	return nil
}
