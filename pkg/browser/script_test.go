package browser

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sculpt-dev/sculpt/pkg/host"
	"github.com/sculpt-dev/sculpt/pkg/types"
)

func TestEncodeChangesFiltersDisabled(t *testing.T) {
	changes := []types.Change{
		{Selector: "#a", Type: types.ChangeText, Value: types.TextValue("one"), Enabled: true},
		{Selector: "#b", Type: types.ChangeText, Value: types.TextValue("two"), Enabled: false},
		{Selector: "#c", Type: types.ChangeStyle, Value: types.PropsValue{"color": "red"}, Enabled: true},
	}

	payload, err := encodeChanges(changes)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "#a", decoded[0]["selector"])
	assert.Equal(t, "#c", decoded[1]["selector"])
}

func TestEncodeChangesUsesWireFormat(t *testing.T) {
	changes := []types.Change{{
		Selector: "#hero",
		Type:     types.ChangeMove,
		Value:    types.MoveValue{TargetSelector: "#footer", Position: types.PositionBefore},
		Enabled:  true,
	}}

	payload, err := encodeChanges(changes)
	require.NoError(t, err)

	// The injected script reads these exact keys.
	assert.Contains(t, payload, `"targetSelector":"#footer"`)
	assert.Contains(t, payload, `"position":"before"`)
}

func TestApplyScriptCoversEveryChangeType(t *testing.T) {
	for _, kind := range []types.ChangeType{
		types.ChangeText, types.ChangeHTML, types.ChangeStyle,
		types.ChangeAttribute, types.ChangeClass, types.ChangeMove,
		types.ChangeInsert, types.ChangeDelete,
	} {
		assert.True(t, strings.Contains(applyScript, "'"+string(kind)+"'"),
			"script must handle %q", kind)
	}
}

func TestPreviewerDefaults(t *testing.T) {
	p := NewPreviewer(Options{})

	assert.Equal(t, DefaultNavigateTimeout, p.opts.NavigateTimeout)
	assert.Equal(t, DefaultViewportWidth, p.opts.ViewportWidth)
	assert.Equal(t, DefaultViewportHeight, p.opts.ViewportHeight)

	custom := NewPreviewer(Options{NavigateTimeout: 5 * time.Second, ViewportWidth: 640})
	assert.Equal(t, 5*time.Second, custom.opts.NavigateTimeout)
	assert.Equal(t, 640, custom.opts.ViewportWidth)
}

func TestPreviewerRequiresStart(t *testing.T) {
	p := NewPreviewer(Options{})

	_, err := p.ApplyChanges(nil)
	assert.Error(t, err)
	assert.Error(t, p.Open("http://localhost"))
	assert.Error(t, p.Reset())
	assert.NoError(t, p.Close(), "closing an unstarted previewer is a no-op")
}

func TestSendIgnoresNonPreviewMessages(t *testing.T) {
	p := NewPreviewer(Options{})

	// Change and save messages are not the previewer's concern, even
	// before Start.
	assert.NoError(t, p.Send(host.ChangeMessage(types.Change{})))
	assert.NoError(t, p.Send(host.SaveMessage(nil, "", "")))
}
