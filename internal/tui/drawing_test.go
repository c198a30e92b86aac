package tui

import (
	"strings"
	"testing"

	"github.com/bethropolis/med/internal/theme"
	"github.com/bethropolis/med/plugins/ned"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimTUI(t *testing.T, width, height int) (*TUI, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	tm, err := NewWithScreen(s, tcell.StyleDefault)
	require.NoError(t, err)
	t.Cleanup(tm.Close)
	s.SetSize(width, height)
	return tm, s
}

func screenRows(s tcell.SimulationScreen) []string {
	cells, width, height := s.GetContents()
	rows := make([]string, height)
	for y := 0; y < height; y++ {
		var b strings.Builder
		for x := 0; x < width; x++ {
			c := cells[y*width+x]
			if len(c.Runes) == 0 || c.Runes[0] == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(string(c.Runes))
		}
		rows[y] = strings.TrimRight(b.String(), " ")
	}
	return rows
}

func TestDrawView(t *testing.T) {
	tm, s := newSimTUI(t, 10, 4)
	th := theme.DefaultDark

	DrawView(tm, ned.View{Values: []int64{5, -12, 300}, Cursor: 1}, &th, 1)
	tm.Show()

	rows := screenRows(s)
	assert.Equal(t, []string{"    5", "> -12", "  300", ""}, rows)

	cells, width, _ := s.GetContents()
	_, _, attrs := cells[1*width+4].Style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrReverse, "the selected value uses the Selected style")

	x, y, visible := s.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 4, x)
	assert.Equal(t, 1, y)
}

func TestDrawViewScrolls(t *testing.T) {
	tm, s := newSimTUI(t, 8, 4) // 3 list rows + status
	th := theme.DefaultLight
	values := []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	DrawView(tm, ned.View{Values: values, Cursor: 9}, &th, 1)
	tm.Show()
	assert.Equal(t, []string{"  7", "  8", "> 9", ""}, screenRows(s))

	DrawView(tm, ned.View{Values: values, Cursor: 0}, &th, 1)
	tm.Show()
	assert.Equal(t, []string{"> 0", "  1", "  2", ""}, screenRows(s))
}

func TestViewportScroll(t *testing.T) {
	v := Viewport{ScrollOff: 3}

	v.Scroll(0, 20, 10)
	assert.Equal(t, 0, v.Top)

	v.Scroll(12, 20, 10)
	assert.Equal(t, 6, v.Top)

	v.Scroll(19, 20, 10)
	assert.Equal(t, 10, v.Top)

	v.Scroll(2, 3, 10)
	assert.Equal(t, 0, v.Top, "short lists never scroll")

	v.Scroll(0, 0, 10)
	assert.Equal(t, 0, v.Top)
}

func TestDrawViewNilTheme(t *testing.T) {
	tm, s := newSimTUI(t, 6, 2)
	assert.NotPanics(t, func() {
		DrawView(tm, ned.View{Values: []int64{1}, Cursor: 0}, nil, 1)
	})
	tm.Show()
	assert.Equal(t, "> 1", screenRows(s)[0])
}
