package config

import (
	"fmt"
	"sync"
	"time"
)

const (
	// SectionIDBrowser is the identifier for the browser preview section
	SectionIDBrowser = "browser"

	// Default values for browser settings
	defaultHeadless        = true
	defaultNavigateTimeout = 30 * time.Second
)

// BrowserSection manages live-preview browser settings.
type BrowserSection struct {
	Headless        bool          `json:"headless"`
	NavigateTimeout time.Duration `json:"navigate_timeout"`
	mu              sync.RWMutex
}

// NewBrowserSection creates a new browser section with default settings.
func NewBrowserSection() *BrowserSection {
	return &BrowserSection{
		Headless:        defaultHeadless,
		NavigateTimeout: defaultNavigateTimeout,
	}
}

// ID returns the section identifier.
func (s *BrowserSection) ID() string {
	return SectionIDBrowser
}

// Title returns the section title.
func (s *BrowserSection) Title() string {
	return "Browser Preview Settings"
}

// Description returns the section description.
func (s *BrowserSection) Description() string {
	return "Configure the browser used for live page previews."
}

// Data returns the current configuration data.
func (s *BrowserSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"headless":         s.Headless,
		"navigate_timeout": s.NavigateTimeout.String(),
	}
}

// SetData updates the configuration from the provided data.
func (s *BrowserSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "headless":
			enabled, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for headless: expected bool, got %T", value)
			}
			s.Headless = enabled

		case "navigate_timeout":
			switch v := value.(type) {
			case string:
				duration, err := time.ParseDuration(v)
				if err != nil {
					return fmt.Errorf("invalid duration string for navigate_timeout: %w", err)
				}
				s.NavigateTimeout = duration
			case float64:
				// JSON numbers come as float64
				s.NavigateTimeout = time.Duration(v)
			default:
				return fmt.Errorf("invalid value type for navigate_timeout: expected string or number, got %T", value)
			}

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *BrowserSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.NavigateTimeout < time.Second || s.NavigateTimeout > 5*time.Minute {
		return fmt.Errorf("navigate_timeout must be between 1s and 5m, got %v", s.NavigateTimeout)
	}

	return nil
}

// Reset resets the section to default configuration.
func (s *BrowserSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Headless = defaultHeadless
	s.NavigateTimeout = defaultNavigateTimeout
}

// GetHeadless returns whether the preview browser runs headless.
func (s *BrowserSection) GetHeadless() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Headless
}

// GetNavigateTimeout returns the page navigation timeout.
func (s *BrowserSection) GetNavigateTimeout() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NavigateTimeout
}
