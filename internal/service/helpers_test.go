package service

import (
	"sync"
	"time"

	"github.com/bagdasarian/simpleprefix/internal/config"
	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/bagdasarian/simpleprefix/internal/format"
)

// memoryStore - groups.yml в памяти, каждое сохранение сдвигает время изменения
type memoryStore struct {
	mu      sync.Mutex
	groups  []domain.Group
	saves   int
	modTime time.Time
	saveErr error
}

func newMemoryStore(groups ...domain.Group) *memoryStore {
	return &memoryStore{groups: groups, modTime: time.Unix(1000, 0)}
}

func (s *memoryStore) Load() ([]domain.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Group(nil), s.groups...), nil
}

func (s *memoryStore) Save(groups []domain.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.groups = append([]domain.Group(nil), groups...)
	s.saves++
	s.modTime = s.modTime.Add(time.Second)
	return nil
}

func (s *memoryStore) ModTime() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modTime, nil
}

func (s *memoryStore) Path() string {
	return "groups.yml"
}

// edit имитирует ручную правку файла
func (s *memoryStore) edit(groups ...domain.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = groups
	s.modTime = s.modTime.Add(time.Minute)
}

type staticSettings struct {
	mu        sync.Mutex
	current   config.Settings
	updates   int
	updateErr error
}

func newStaticSettings() *staticSettings {
	return &staticSettings{current: config.DefaultSettings()}
}

func (s *staticSettings) Current() config.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *staticSettings) Update(fn func(*config.Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.current)
	s.updates++
	return s.updateErr
}

type recordingMarker struct {
	mu       sync.Mutex
	marks    int
	releases []time.Duration
}

func (m *recordingMarker) Mark() {
	m.mu.Lock()
	m.marks++
	m.mu.Unlock()
}

func (m *recordingMarker) ReleaseAfter(d time.Duration) {
	m.mu.Lock()
	m.releases = append(m.releases, d)
	m.mu.Unlock()
}

// inlineScheduler выполняет задачи сразу и запоминает запрошенные задержки
type inlineScheduler struct {
	delays  []time.Duration
	stopped bool
}

func (s *inlineScheduler) Submit(fn func()) bool {
	if s.stopped {
		return false
	}
	fn()
	return true
}

func (s *inlineScheduler) SubmitAfter(d time.Duration, fn func()) {
	s.delays = append(s.delays, d)
	if !s.stopped {
		fn()
	}
}

func adminGroup() domain.Group {
	return domain.Group{Name: "admin", Prefix: "[Admin] ", Priority: 1}
}

// teamName - ожидаемое имя команды пользователя при современных лимитах
func teamName(priority int, u *domain.User) string {
	return format.TeamIdentifier(priority, u.IDTail(), 16)
}
