package config

import (
	"fmt"
	"testing"
	"time"
)

// brokenSection wraps a data map with an injectable validation failure, for
// exercising the save-side validation gate.
type brokenSection struct {
	id          string
	data        map[string]interface{}
	validateErr error
}

func (s *brokenSection) ID() string                                { return s.id }
func (s *brokenSection) Title() string                             { return "Broken" }
func (s *brokenSection) Description() string                       { return "always fails validation" }
func (s *brokenSection) Data() map[string]interface{}              { return s.data }
func (s *brokenSection) SetData(data map[string]interface{}) error { s.data = data; return nil }
func (s *brokenSection) Validate() error                           { return s.validateErr }
func (s *brokenSection) Reset()                                    { s.data = map[string]interface{}{} }

// memStore keeps section data in memory so manager tests need no files.
type memStore struct {
	sections map[string]map[string]interface{}
	loadErr  error
	saveErr  error
	saved    bool
}

func newMemStore() *memStore {
	return &memStore{sections: map[string]map[string]interface{}{}}
}

func (s *memStore) Load() error { return s.loadErr }

func (s *memStore) Save() error {
	s.saved = true
	return s.saveErr
}

func (s *memStore) GetSection(id string) (map[string]interface{}, error) {
	if data, ok := s.sections[id]; ok {
		return data, nil
	}
	return map[string]interface{}{}, nil
}

func (s *memStore) SetSection(id string, data map[string]interface{}) error {
	s.sections[id] = data
	return nil
}

func TestNewManagerStartsEmpty(t *testing.T) {
	store := newMemStore()
	manager := NewManager(store)

	if manager.Store() != store {
		t.Error("Manager does not reference the store it was built with")
	}
	if len(manager.GetSections()) != 0 {
		t.Error("New manager should have no sections registered")
	}
}

func TestRegisterSection(t *testing.T) {
	t.Run("registered section is retrievable by id", func(t *testing.T) {
		manager := NewManager(newMemStore())

		if err := manager.RegisterSection(NewEditorSection()); err != nil {
			t.Fatalf("RegisterSection failed: %v", err)
		}

		section, ok := manager.GetSection(SectionIDEditor)
		if !ok {
			t.Fatal("editor section not found after registration")
		}
		if section.ID() != SectionIDEditor {
			t.Errorf("Retrieved section has id %q, want %q", section.ID(), SectionIDEditor)
		}
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		manager := NewManager(newMemStore())

		if err := manager.RegisterSection(NewBrowserSection()); err != nil {
			t.Fatalf("First registration failed: %v", err)
		}
		if err := manager.RegisterSection(NewBrowserSection()); err == nil {
			t.Error("Expected error registering a second browser section")
		}
	})

	t.Run("GetSections preserves registration order", func(t *testing.T) {
		manager := NewManager(newMemStore())

		manager.RegisterSection(NewEditorSection())
		manager.RegisterSection(NewBrowserSection())

		sections := manager.GetSections()
		if len(sections) != 2 {
			t.Fatalf("Expected 2 sections, got %d", len(sections))
		}
		if sections[0].ID() != SectionIDEditor || sections[1].ID() != SectionIDBrowser {
			t.Errorf("Sections out of order: %q, %q", sections[0].ID(), sections[1].ID())
		}
	})
}

func TestGetSectionUnknownID(t *testing.T) {
	manager := NewManager(newMemStore())
	manager.RegisterSection(NewEditorSection())

	if _, ok := manager.GetSection("themes"); ok {
		t.Error("GetSection should report false for an unregistered id")
	}
}

func TestLoadAll(t *testing.T) {
	t.Run("hydrates registered sections from stored data", func(t *testing.T) {
		store := newMemStore()
		store.sections[SectionIDEditor] = map[string]interface{}{
			"max_history":         250,
			"protected_selectors": []interface{}{"#checkout *"},
		}
		store.sections[SectionIDBrowser] = map[string]interface{}{
			"headless":         false,
			"navigate_timeout": "45s",
		}

		manager := NewManager(store)
		editor := NewEditorSection()
		browser := NewBrowserSection()
		manager.RegisterSection(editor)
		manager.RegisterSection(browser)

		if err := manager.LoadAll(); err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}

		if got := editor.GetMaxHistory(); got != 250 {
			t.Errorf("max_history = %d, want 250", got)
		}
		if got := editor.GetProtectedSelectors(); len(got) != 1 || got[0] != "#checkout *" {
			t.Errorf("protected_selectors = %v, want [#checkout *]", got)
		}
		if browser.GetHeadless() {
			t.Error("headless should have been loaded as false")
		}
		if got := browser.GetNavigateTimeout(); got != 45*time.Second {
			t.Errorf("navigate_timeout = %v, want 45s", got)
		}
	})

	t.Run("store load failure surfaces", func(t *testing.T) {
		store := newMemStore()
		store.loadErr = fmt.Errorf("config file unreadable")

		manager := NewManager(store)
		if err := manager.LoadAll(); err == nil {
			t.Error("Expected LoadAll to propagate the store error")
		}
	})
}

func TestSaveAll(t *testing.T) {
	t.Run("writes every section and persists the store", func(t *testing.T) {
		store := newMemStore()
		manager := NewManager(store)

		editor := NewEditorSection()
		editor.MaxHistory = 500
		manager.RegisterSection(editor)

		if err := manager.SaveAll(); err != nil {
			t.Fatalf("SaveAll failed: %v", err)
		}

		if store.sections[SectionIDEditor]["max_history"] != 500 {
			t.Errorf("stored max_history = %v, want 500", store.sections[SectionIDEditor]["max_history"])
		}
		if !store.saved {
			t.Error("Store was not persisted")
		}
	})

	t.Run("invalid section blocks the whole save", func(t *testing.T) {
		store := newMemStore()
		manager := NewManager(store)

		manager.RegisterSection(&brokenSection{
			id:          "plugins",
			data:        map[string]interface{}{"enabled": true},
			validateErr: fmt.Errorf("unknown plugin"),
		})

		if err := manager.SaveAll(); err == nil {
			t.Error("Expected validation error from SaveAll")
		}
		if len(store.sections) != 0 {
			t.Error("Invalid sections must not reach the store")
		}
	})

	t.Run("store save failure surfaces", func(t *testing.T) {
		store := newMemStore()
		store.saveErr = fmt.Errorf("disk full")

		manager := NewManager(store)
		manager.RegisterSection(NewBrowserSection())

		if err := manager.SaveAll(); err == nil {
			t.Error("Expected SaveAll to propagate the store error")
		}
	})
}

func TestResetAll(t *testing.T) {
	manager := NewManager(newMemStore())

	editor := NewEditorSection()
	editor.MaxHistory = 7
	editor.AddProtectedSelector("nav *")
	browser := NewBrowserSection()
	browser.Headless = false

	manager.RegisterSection(editor)
	manager.RegisterSection(browser)
	manager.ResetAll()

	if got := editor.GetMaxHistory(); got != defaultMaxHistory {
		t.Errorf("max_history after reset = %d, want %d", got, defaultMaxHistory)
	}
	if got := editor.GetProtectedSelectors(); len(got) != 0 {
		t.Errorf("protected_selectors after reset = %v, want none", got)
	}
	if !browser.GetHeadless() {
		t.Error("headless should reset to true")
	}
}

func TestManagerConcurrentRegistration(t *testing.T) {
	manager := NewManager(newMemStore())

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		i := i
		go func() {
			manager.RegisterSection(&brokenSection{id: fmt.Sprintf("workspace-%d", i)})
			manager.GetSections()
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	if got := len(manager.GetSections()); got != 10 {
		t.Errorf("Expected 10 sections after concurrent registration, got %d", got)
	}
}
