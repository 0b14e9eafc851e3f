// Package theme holds the process-wide UI preferences: color theme and font
// size. Not security-relevant; it shares the session service's reactive
// state pattern and persists every change immediately.
package theme

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const prefsFileName = "preferences.yaml"

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// Preferences is the persisted shape of the theme state.
type Preferences struct {
	Theme    Theme    `yaml:"theme"`
	FontSize FontSize `yaml:"fontSize"`
}

// DarkModeDetector reports the OS-level color-scheme preference. Used only
// when no preference has been persisted yet.
type DarkModeDetector func() bool

// Service owns the theme state. Changes persist immediately; persistence
// failure is a silent no-op, the preference just won't survive a restart.
type Service struct {
	path string

	mu        sync.Mutex
	prefs     Preferences
	listeners map[int]func(Preferences)
	nextID    int
}

// New loads preferences from dir, falling back to the detector for the
// theme and to light/medium defaults. A nil detector means no OS preference
// is consulted.
func New(dir string, detect DarkModeDetector) *Service {
	s := &Service{
		path:      filepath.Join(dir, prefsFileName),
		prefs:     Preferences{Theme: Light, FontSize: FontMedium},
		listeners: make(map[int]func(Preferences)),
	}

	if loaded, ok := s.load(); ok {
		s.prefs = loaded
		return s
	}

	if detect != nil && detect() {
		s.prefs.Theme = Dark
	}
	return s
}

func (s *Service) load() (Preferences, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Preferences{}, false
	}
	var prefs Preferences
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		log.Warn().Err(err).Msg("theme: malformed preferences file, using defaults")
		return Preferences{}, false
	}
	if !validTheme(prefs.Theme) || !validFontSize(prefs.FontSize) {
		return Preferences{}, false
	}
	return prefs, true
}

func (s *Service) persistLocked() {
	data, err := yaml.Marshal(s.prefs)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		log.Warn().Err(err).Msg("theme: cannot create preferences dir")
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		log.Warn().Err(err).Msg("theme: cannot persist preferences")
	}
}

// Current returns the active preferences.
func (s *Service) Current() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Subscribe registers fn to be called with the new preferences after every
// change. The returned function unsubscribes.
func (s *Service) Subscribe(fn func(Preferences)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Service) change(mutate func(*Preferences)) {
	s.mu.Lock()
	mutate(&s.prefs)
	s.persistLocked()
	prefs := s.prefs
	fns := make([]func(Preferences), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(prefs)
	}
}

// SetTheme switches to a specific theme. Unknown values are ignored.
func (s *Service) SetTheme(theme Theme) {
	if !validTheme(theme) {
		return
	}
	s.change(func(p *Preferences) { p.Theme = theme })
}

// Toggle flips between light and dark.
func (s *Service) Toggle() {
	s.change(func(p *Preferences) {
		if p.Theme == Light {
			p.Theme = Dark
		} else {
			p.Theme = Light
		}
	})
}

// SetFontSize changes the font size. Unknown values are ignored.
func (s *Service) SetFontSize(size FontSize) {
	if !validFontSize(size) {
		return
	}
	s.change(func(p *Preferences) { p.FontSize = size })
}

func validTheme(t Theme) bool {
	return t == Light || t == Dark
}

func validFontSize(f FontSize) bool {
	return f == FontSmall || f == FontMedium || f == FontLarge
}
