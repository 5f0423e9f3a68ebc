package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelayers/layerex/internal/annotations"
)

// Test Plan for color selection:
// - --all returns the whole catalog in catalog order
// - --all combined with explicit colors is an error
// - Colors resolve by value
// - Colors resolve by display name when no value matches
// - Unknown colors report the available values
// - No selection at all is an error

var testCatalog = []annotations.Color{
	{Name: "Red", Value: "#ff0000"},
	{Name: "Green", Value: "#00ff00"},
}

func TestSelectColors_All(t *testing.T) {
	t.Parallel()

	selected, err := selectColors(testCatalog, nil, true)
	require.NoError(t, err)
	assert.Equal(t, testCatalog, selected)
}

func TestSelectColors_AllWithArgs(t *testing.T) {
	t.Parallel()

	_, err := selectColors(testCatalog, []string{"#ff0000"}, true)
	require.Error(t, err)
}

func TestSelectColors_ByValue(t *testing.T) {
	t.Parallel()

	selected, err := selectColors(testCatalog, []string{"#00ff00"}, false)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "Green", selected[0].Name)
}

func TestSelectColors_ByName(t *testing.T) {
	t.Parallel()

	selected, err := selectColors(testCatalog, []string{"Red"}, false)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "#ff0000", selected[0].Value)
}

func TestSelectColors_Unknown(t *testing.T) {
	t.Parallel()

	_, err := selectColors(testCatalog, []string{"#123456"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#ff0000")
}

func TestSelectColors_Empty(t *testing.T) {
	t.Parallel()

	_, err := selectColors(testCatalog, nil, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--all")
}
