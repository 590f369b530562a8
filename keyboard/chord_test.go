package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	c, err := Parse("Enter")
	require.NoError(t, err)
	assert.Equal(t, Chord{Key: "ENTER"}, c)

	c, err = Parse(" ctrl + Shift+p ")
	require.NoError(t, err)
	assert.Equal(t, Chord{Modifiers: []Modifier{Ctrl, Shift}, Key: "P"}, c)
	assert.Equal(t, "CTRL+SHIFT+P", c.String())

	c, err = Parse("Control+Alt+Win+F5")
	require.NoError(t, err)
	assert.Equal(t, []Modifier{Ctrl, Alt, Win}, c.Modifiers)
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{"", "  ", "Ctrl+", "+A", "Hyper+A"} {
		_, err := Parse(s)
		assert.Error(t, err, s)
	}
}
