package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBar(t *testing.T) (*StatusBar, *time.Time) {
	t.Helper()
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sb := New(DefaultConfig())
	sb.now = func() time.Time { return clock }
	return sb, &clock
}

func rowText(t *testing.T, s tcell.SimulationScreen, y int) string {
	t.Helper()
	cells, width, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		cell := cells[y*width+x]
		if len(cell.Runes) == 0 || cell.Runes[0] == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteString(string(cell.Runes))
	}
	return b.String()
}

func TestDefaultText(t *testing.T) {
	sb, _ := newTestBar(t)
	sb.SetDocumentInfo("3 values, sum 6")
	sb.SetEditorMode("NORMAL")
	sb.SetHistoryInfo(4, 2, 7)

	left, right := sb.Text()
	assert.Equal(t, "3 values, sum 6 -- NORMAL", left)
	assert.Equal(t, "#4 depth 2 (7)", right)

	sb.SetHistoryInfo(-1, 0, 7)
	_, right = sb.Text()
	assert.Equal(t, "root (7)", right)
}

func TestMessagePriority(t *testing.T) {
	sb, clock := newTestBar(t)
	sb.SetDocumentInfo("1 value, sum 1")

	sb.SetEditorStatus("Nothing to undo")
	left, _ := sb.Text()
	assert.Equal(t, "Nothing to undo", left)

	sb.SetTemporaryMessage("Yanked %d", 1)
	left, _ = sb.Text()
	assert.Equal(t, "Yanked 1", left)

	*clock = clock.Add(5 * time.Second)
	left, _ = sb.Text()
	assert.Equal(t, "Nothing to undo", left, "expired messages fall back to the editor status")

	sb.SetEditorStatus("")
	left, _ = sb.Text()
	assert.Equal(t, "1 value, sum 1", left)
}

func TestResetTemporaryMessage(t *testing.T) {
	sb, _ := newTestBar(t)
	sb.SetDocumentInfo("doc")
	sb.SetTemporaryMessage("hello")
	sb.ResetTemporaryMessage()
	left, _ := sb.Text()
	assert.Equal(t, "doc", left)
}

func TestDraw(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	defer s.Fini()
	s.SetSize(30, 2)

	sb, _ := newTestBar(t)
	sb.SetDocumentInfo("2 values")
	sb.SetHistoryInfo(0, 1, 1)
	sb.Draw(s, 30, 2)
	s.Show()

	row := rowText(t, s, 1)
	assert.True(t, strings.HasPrefix(row, "2 values"), row)
	assert.True(t, strings.HasSuffix(row, "#0 depth 1 (1)"), row)
	assert.Equal(t, strings.Repeat(" ", 30), rowText(t, s, 0), "only the last row is drawn")
}

func TestDrawNarrowDropsRightSegment(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	defer s.Fini()
	s.SetSize(12, 1)

	sb, _ := newTestBar(t)
	sb.SetDocumentInfo("a long summary line")
	sb.SetHistoryInfo(3, 3, 9)
	sb.Draw(s, 12, 1)
	s.Show()

	assert.Equal(t, "a long summa", rowText(t, s, 0))
}
