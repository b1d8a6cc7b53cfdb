package types

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// wireChange is the flat persistence/messaging shape of a Change. The value
// field is decoded lazily because its shape depends on the type tag.
type wireChange struct {
	Selector string          `json:"selector"`
	Type     ChangeType      `json:"type"`
	Value    json.RawMessage `json:"value"`
	Enabled  *bool           `json:"enabled,omitempty"`
	Mode     Mode            `json:"mode,omitempty"`
}

type wireMove struct {
	TargetSelector string   `json:"targetSelector" yaml:"targetSelector"`
	Position       Position `json:"position" yaml:"position"`
}

type wireInsert struct {
	HTML           string   `json:"html" yaml:"html"`
	TargetSelector string   `json:"targetSelector" yaml:"targetSelector"`
	Position       Position `json:"position" yaml:"position"`
}

type wireDelete struct {
	HTML                string `json:"html" yaml:"html"`
	ParentSelector      string `json:"parentSelector" yaml:"parentSelector"`
	NextSiblingSelector string `json:"nextSiblingSelector,omitempty" yaml:"nextSiblingSelector,omitempty"`
}

type wireClass struct {
	Add    []string `json:"add,omitempty" yaml:"add,omitempty"`
	Remove []string `json:"remove,omitempty" yaml:"remove,omitempty"`
}

// MarshalJSON encodes the change in the flat wire format.
func (c Change) MarshalJSON() ([]byte, error) {
	raw, err := marshalValue(c.Type, c.Value)
	if err != nil {
		return nil, err
	}
	enabled := c.Enabled
	return json.Marshal(wireChange{
		Selector: c.Selector,
		Type:     c.Type,
		Value:    raw,
		Enabled:  &enabled,
		Mode:     c.Mode,
	})
}

// UnmarshalJSON decodes the flat wire format, dispatching the value payload
// on the type tag. A missing enabled field means enabled.
func (c *Change) UnmarshalJSON(data []byte) error {
	var w wireChange
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if !w.Type.Valid() {
		return fmt.Errorf("unknown change type %q", w.Type)
	}
	value, err := unmarshalValue(w.Type, w.Value)
	if err != nil {
		return fmt.Errorf("decode %s change value: %w", w.Type, err)
	}
	c.Selector = w.Selector
	c.Type = w.Type
	c.Value = value
	c.Mode = w.Mode
	c.Enabled = true
	if w.Enabled != nil {
		c.Enabled = *w.Enabled
	}
	return nil
}

func marshalValue(t ChangeType, v Value) (json.RawMessage, error) {
	if v == nil {
		return json.RawMessage("null"), nil
	}
	switch v := v.(type) {
	case TextValue:
		return json.Marshal(string(v))
	case HTMLValue:
		return json.Marshal(string(v))
	case PropsValue:
		return json.Marshal(map[string]string(v))
	case ClassValue:
		return json.Marshal(wireClass{Add: v.Add, Remove: v.Remove})
	case MoveValue:
		return json.Marshal(wireMove{TargetSelector: v.TargetSelector, Position: v.Position})
	case InsertValue:
		return json.Marshal(wireInsert{HTML: v.HTML, TargetSelector: v.TargetSelector, Position: v.Position})
	case DeleteValue:
		return json.Marshal(wireDelete{HTML: v.HTML, ParentSelector: v.ParentSelector, NextSiblingSelector: v.NextSiblingSelector})
	default:
		return nil, fmt.Errorf("unsupported value payload %T for type %q", v, t)
	}
}

func unmarshalValue(t ChangeType, raw json.RawMessage) (Value, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	switch t {
	case ChangeText:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return TextValue(s), nil
	case ChangeHTML:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return HTMLValue(s), nil
	case ChangeStyle, ChangeAttribute, ChangeResize:
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		return PropsValue(m), nil
	case ChangeClass:
		var w wireClass
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return ClassValue{Add: w.Add, Remove: w.Remove}, nil
	case ChangeMove:
		var w wireMove
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return MoveValue{TargetSelector: w.TargetSelector, Position: w.Position}, nil
	case ChangeInsert:
		var w wireInsert
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return InsertValue{HTML: w.HTML, TargetSelector: w.TargetSelector, Position: w.Position}, nil
	case ChangeDelete:
		var w wireDelete
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return DeleteValue{HTML: w.HTML, ParentSelector: w.ParentSelector, NextSiblingSelector: w.NextSiblingSelector}, nil
	default:
		return nil, fmt.Errorf("unknown change type %q", t)
	}
}

// MarshalYAML mirrors the JSON wire shape for YAML change-set files.
func (c Change) MarshalYAML() (interface{}, error) {
	out := map[string]interface{}{
		"selector": c.Selector,
		"type":     string(c.Type),
		"enabled":  c.Enabled,
	}
	if c.Mode != "" {
		out["mode"] = string(c.Mode)
	}
	switch v := c.Value.(type) {
	case nil:
	case TextValue:
		out["value"] = string(v)
	case HTMLValue:
		out["value"] = string(v)
	case PropsValue:
		out["value"] = map[string]string(v)
	case ClassValue:
		out["value"] = wireClass{Add: v.Add, Remove: v.Remove}
	case MoveValue:
		out["value"] = wireMove{TargetSelector: v.TargetSelector, Position: v.Position}
	case InsertValue:
		out["value"] = wireInsert{HTML: v.HTML, TargetSelector: v.TargetSelector, Position: v.Position}
	case DeleteValue:
		out["value"] = wireDelete{HTML: v.HTML, ParentSelector: v.ParentSelector, NextSiblingSelector: v.NextSiblingSelector}
	default:
		return nil, fmt.Errorf("unsupported value payload %T for type %q", c.Value, c.Type)
	}
	return out, nil
}

// UnmarshalYAML decodes the YAML rendering of the wire shape.
func (c *Change) UnmarshalYAML(node *yaml.Node) error {
	var aux struct {
		Selector string     `yaml:"selector"`
		Type     ChangeType `yaml:"type"`
		Value    yaml.Node  `yaml:"value"`
		Enabled  *bool      `yaml:"enabled"`
		Mode     Mode       `yaml:"mode"`
	}
	if err := node.Decode(&aux); err != nil {
		return err
	}
	if !aux.Type.Valid() {
		return fmt.Errorf("unknown change type %q", aux.Type)
	}
	value, err := decodeYAMLValue(aux.Type, &aux.Value)
	if err != nil {
		return fmt.Errorf("decode %s change value: %w", aux.Type, err)
	}
	c.Selector = aux.Selector
	c.Type = aux.Type
	c.Value = value
	c.Mode = aux.Mode
	c.Enabled = true
	if aux.Enabled != nil {
		c.Enabled = *aux.Enabled
	}
	return nil
}

func decodeYAMLValue(t ChangeType, node *yaml.Node) (Value, error) {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	switch t {
	case ChangeText:
		var s string
		if err := node.Decode(&s); err != nil {
			return nil, err
		}
		return TextValue(s), nil
	case ChangeHTML:
		var s string
		if err := node.Decode(&s); err != nil {
			return nil, err
		}
		return HTMLValue(s), nil
	case ChangeStyle, ChangeAttribute, ChangeResize:
		var m map[string]string
		if err := node.Decode(&m); err != nil {
			return nil, err
		}
		return PropsValue(m), nil
	case ChangeClass:
		var w wireClass
		if err := node.Decode(&w); err != nil {
			return nil, err
		}
		return ClassValue{Add: w.Add, Remove: w.Remove}, nil
	case ChangeMove:
		var w wireMove
		if err := node.Decode(&w); err != nil {
			return nil, err
		}
		return MoveValue{TargetSelector: w.TargetSelector, Position: w.Position}, nil
	case ChangeInsert:
		var w wireInsert
		if err := node.Decode(&w); err != nil {
			return nil, err
		}
		return InsertValue{HTML: w.HTML, TargetSelector: w.TargetSelector, Position: w.Position}, nil
	case ChangeDelete:
		var w wireDelete
		if err := node.Decode(&w); err != nil {
			return nil, err
		}
		return DeleteValue{HTML: w.HTML, ParentSelector: w.ParentSelector, NextSiblingSelector: w.NextSiblingSelector}, nil
	default:
		return nil, fmt.Errorf("unknown change type %q", t)
	}
}
