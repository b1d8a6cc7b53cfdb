package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestChangeJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		change Change
	}{
		{
			name: "text change",
			change: Change{
				Selector: "#headline",
				Type:     ChangeText,
				Value:    TextValue("New headline"),
				Enabled:  true,
			},
		},
		{
			name: "style change with mode",
			change: Change{
				Selector: ".hero",
				Type:     ChangeStyle,
				Value:    PropsValue{"display": "none", "color": "red"},
				Enabled:  true,
				Mode:     ModeMerge,
			},
		},
		{
			name: "move change",
			change: Change{
				Selector: "#banner",
				Type:     ChangeMove,
				Value:    MoveValue{TargetSelector: "#footer", Position: PositionBefore},
				Enabled:  true,
			},
		},
		{
			name: "delete change with structural payload",
			change: Change{
				Selector: "#promo",
				Type:     ChangeDelete,
				Value: DeleteValue{
					HTML:                `<div id="promo">Sale!</div>`,
					ParentSelector:      "#sidebar",
					NextSiblingSelector: "#signup",
				},
				Enabled: true,
			},
		},
		{
			name: "disabled class change",
			change: Change{
				Selector: "nav > a",
				Type:     ChangeClass,
				Value:    ClassValue{Add: []string{"active"}, Remove: []string{"muted"}},
				Enabled:  false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.change)
			require.NoError(t, err)

			var decoded Change
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tt.change, decoded)
		})
	}
}

func TestChangeJSONDefaults(t *testing.T) {
	t.Run("missing enabled means enabled", func(t *testing.T) {
		var c Change
		err := json.Unmarshal([]byte(`{"selector":"#x","type":"text","value":"hi"}`), &c)
		require.NoError(t, err)
		assert.True(t, c.Enabled)
		assert.Equal(t, TextValue("hi"), c.Value)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		var c Change
		err := json.Unmarshal([]byte(`{"selector":"#x","type":"teleport","value":"hi"}`), &c)
		assert.Error(t, err)
	})

	t.Run("wrong payload shape rejected", func(t *testing.T) {
		var c Change
		err := json.Unmarshal([]byte(`{"selector":"#x","type":"style","value":"not-a-map"}`), &c)
		assert.Error(t, err)
	})
}

func TestChangeYAMLRoundTrip(t *testing.T) {
	in := []Change{
		{
			Selector: "#headline",
			Type:     ChangeText,
			Value:    TextValue("Hello"),
			Enabled:  true,
		},
		{
			Selector: ".cta",
			Type:     ChangeAttribute,
			Value:    PropsValue{"href": "/signup"},
			Enabled:  true,
			Mode:     ModeReplace,
		},
		{
			Selector: "#widget",
			Type:     ChangeInsert,
			Value:    InsertValue{HTML: "<span>hi</span>", TargetSelector: "#slot", Position: PositionLastChild},
			Enabled:  true,
		},
	}

	data, err := yaml.Marshal(in)
	require.NoError(t, err)

	var out []Change
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestCloneIsolation(t *testing.T) {
	orig := ChangeRecord{
		Change: Change{
			Selector: "#box",
			Type:     ChangeStyle,
			Value:    PropsValue{"width": "100px"},
			Enabled:  true,
		},
		OldValue: PropsSnapshot{"width": "50px"},
	}

	cp := orig.Clone()
	cp.Change.Selector = "#other"
	cp.Change.Value.(PropsValue)["width"] = "999px"
	cp.OldValue.(PropsSnapshot)["width"] = "mutated"

	assert.Equal(t, "#box", orig.Change.Selector)
	assert.Equal(t, "100px", orig.Change.Value.(PropsValue)["width"])
	assert.Equal(t, "50px", orig.OldValue.(PropsSnapshot)["width"])
}

func TestSameTarget(t *testing.T) {
	a := Change{Selector: "#x", Type: ChangeText}
	b := Change{Selector: "#x", Type: ChangeText}
	c := Change{Selector: "#x", Type: ChangeHTML}
	d := Change{Selector: "#y", Type: ChangeText}

	assert.True(t, a.SameTarget(b))
	assert.False(t, a.SameTarget(c))
	assert.False(t, a.SameTarget(d))
}
