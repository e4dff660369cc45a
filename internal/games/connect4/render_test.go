package connect4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-connect4/internal/core"
)

func TestRenderMatchesString(t *testing.T) {
	b := EmptyBoard()
	_, err := b.ApplyMove(3, PlayerOne)
	require.NoError(t, err)
	_, err = b.ApplyMove(3, PlayerTwo)
	require.NoError(t, err)

	screen := core.NewScreen(BoardWidth, BoardHeight)
	Render(screen, 0, 0, b, RenderOptions{Cursor: -1})

	assert.Equal(t, b.String()[:len(b.String())-1], screen.String())
}

func TestRenderColours(t *testing.T) {
	b := EmptyBoard()
	for _, col := range []int{0, 1, 2, 3} {
		_, err := b.ApplyMove(col, PlayerOne)
		require.NoError(t, err)
	}
	_, err := b.ApplyMove(6, PlayerTwo)
	require.NoError(t, err)

	screen := core.NewScreen(BoardWidth+4, BoardHeight+2)
	Render(screen, 2, 1, b, RenderOptions{Cursor: 5, Winning: b.WinningLine(PlayerOne)})

	bottomY := 1 + 1 + 5*2 + 1
	assert.Equal(t, core.ColorGreen, screen.GetCell(2+0*4+2, bottomY).Color, "winning disc highlighted")
	assert.Equal(t, core.ColorYellow, screen.GetCell(2+6*4+2, bottomY).Color)
	assert.Equal(t, 'O', screen.Get(2+6*4+2, bottomY))
	assert.Equal(t, core.ColorCyan, screen.GetCell(2+5*4+2, 1).Color, "cursor column number highlighted")
}
