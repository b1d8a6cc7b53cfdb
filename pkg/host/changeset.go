package host

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sculpt-dev/sculpt/pkg/types"
)

// LoadChangeSet reads an ordered change list from disk. The format follows
// the file extension: .yaml/.yml decode as YAML, everything else as JSON.
func LoadChangeSet(path string) ([]types.Change, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read change set: %w", err)
	}
	return DecodeChangeSet(data, formatForPath(path))
}

// SaveChangeSet writes an ordered change list to disk, format chosen by
// extension as in LoadChangeSet.
func SaveChangeSet(path string, changes []types.Change) error {
	var (
		data []byte
		err  error
	)
	switch formatForPath(path) {
	case "yaml":
		data, err = yaml.Marshal(changes)
	default:
		data, err = json.MarshalIndent(changes, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode change set: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write change set: %w", err)
	}
	return nil
}

// DecodeChangeSet parses a change list from raw bytes in the given format
// ("json" or "yaml").
func DecodeChangeSet(data []byte, format string) ([]types.Change, error) {
	var changes []types.Change
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &changes); err != nil {
			return nil, fmt.Errorf("decode yaml change set: %w", err)
		}
	case "json", "":
		if err := json.Unmarshal(data, &changes); err != nil {
			return nil, fmt.Errorf("decode json change set: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown change set format %q", format)
	}
	return changes, nil
}

func formatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}
