package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()

	text, err := m.Read()
	require.NoError(t, err)
	assert.Empty(t, text)

	require.NoError(t, m.Write("<div>copied</div>"))

	text, err = m.Read()
	require.NoError(t, err)
	assert.Equal(t, "<div>copied</div>", text)
}
