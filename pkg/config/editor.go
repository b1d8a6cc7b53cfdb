package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDEditor is the identifier for the editor settings section
	SectionIDEditor = "editor"

	// Default values for editor settings
	defaultMaxHistory           = 100
	defaultNotificationsEnabled = true
	defaultConfirmDestructive   = true
)

// EditorSection manages editing behavior settings.
type EditorSection struct {
	MaxHistory           int      `json:"max_history"`
	ProtectedSelectors   []string `json:"protected_selectors"`
	NotificationsEnabled bool     `json:"notifications_enabled"`
	ConfirmDestructive   bool     `json:"confirm_destructive"`
	mu                   sync.RWMutex
}

// NewEditorSection creates a new editor section with default settings.
func NewEditorSection() *EditorSection {
	return &EditorSection{
		MaxHistory:           defaultMaxHistory,
		NotificationsEnabled: defaultNotificationsEnabled,
		ConfirmDestructive:   defaultConfirmDestructive,
	}
}

// ID returns the section identifier.
func (s *EditorSection) ID() string {
	return SectionIDEditor
}

// Title returns the section title.
func (s *EditorSection) Title() string {
	return "Editor Settings"
}

// Description returns the section description.
func (s *EditorSection) Description() string {
	return "Configure undo history depth, protected selector patterns and confirmation behavior."
}

// Data returns the current configuration data.
func (s *EditorSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	selectors := make([]interface{}, len(s.ProtectedSelectors))
	for i, pattern := range s.ProtectedSelectors {
		selectors[i] = pattern
	}

	return map[string]interface{}{
		"max_history":           s.MaxHistory,
		"protected_selectors":   selectors,
		"notifications_enabled": s.NotificationsEnabled,
		"confirm_destructive":   s.ConfirmDestructive,
	}
}

// SetData updates the configuration from the provided data.
func (s *EditorSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "max_history":
			// JSON numbers come as float64
			switch v := value.(type) {
			case float64:
				s.MaxHistory = int(v)
			case int:
				s.MaxHistory = v
			default:
				return fmt.Errorf("invalid value type for max_history: expected number, got %T", value)
			}

		case "protected_selectors":
			items, ok := value.([]interface{})
			if !ok {
				return fmt.Errorf("invalid value type for protected_selectors: expected list, got %T", value)
			}
			selectors := make([]string, 0, len(items))
			for _, item := range items {
				pattern, ok := item.(string)
				if !ok {
					return fmt.Errorf("invalid protected selector: expected string, got %T", item)
				}
				selectors = append(selectors, pattern)
			}
			s.ProtectedSelectors = selectors

		case "notifications_enabled":
			enabled, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for notifications_enabled: expected bool, got %T", value)
			}
			s.NotificationsEnabled = enabled

		case "confirm_destructive":
			enabled, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for confirm_destructive: expected bool, got %T", value)
			}
			s.ConfirmDestructive = enabled

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *EditorSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.MaxHistory < 1 || s.MaxHistory > 10000 {
		return fmt.Errorf("max_history must be between 1 and 10000, got %d", s.MaxHistory)
	}

	return nil
}

// Reset resets the section to default configuration.
func (s *EditorSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.MaxHistory = defaultMaxHistory
	s.ProtectedSelectors = nil
	s.NotificationsEnabled = defaultNotificationsEnabled
	s.ConfirmDestructive = defaultConfirmDestructive
}

// GetMaxHistory returns the configured undo stack depth.
func (s *EditorSection) GetMaxHistory() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.MaxHistory
}

// GetProtectedSelectors returns the configured protection patterns.
func (s *EditorSection) GetProtectedSelectors() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.ProtectedSelectors...)
}

// AddProtectedSelector appends a protection pattern if not already present.
func (s *EditorSection) AddProtectedSelector(pattern string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.ProtectedSelectors {
		if existing == pattern {
			return
		}
	}
	s.ProtectedSelectors = append(s.ProtectedSelectors, pattern)
}

// GetNotificationsEnabled returns whether user notifications are enabled.
func (s *EditorSection) GetNotificationsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NotificationsEnabled
}

// GetConfirmDestructive returns whether destructive operations require
// confirmation.
func (s *EditorSection) GetConfirmDestructive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ConfirmDestructive
}
