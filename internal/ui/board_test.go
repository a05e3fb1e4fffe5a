package ui

import (
	"image"
	"testing"

	"MyLocalPaint/internal/config"
	"MyLocalPaint/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var canvasSize = fyne.NewSize(state.CanvasWidth, state.CanvasHeight)

func newTestBoard(t *testing.T, readOnly bool) (*CanvasWidget, *state.Controller) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	ctrl := state.NewController(state.CanvasWidth, state.CanvasHeight)
	t.Cleanup(func() { ctrl.Buffer().Close() })
	board := NewCanvasWidget(ctrl, canvasSize, readOnly)
	test.WidgetRenderer(board)
	board.Resize(canvasSize)
	return board, ctrl
}

func mouse(x, y float32, button desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     button,
	}
}

func dragTo(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestCanvasWidgetDrawsLine(t *testing.T) {
	board, ctrl := newTestBoard(t, false)
	ctrl.SelectTool(state.ToolLine)

	board.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	board.Dragged(dragTo(60, 60))
	board.Dragged(dragTo(100, 100))
	board.MouseUp(mouse(100, 100, desktop.MouseButtonPrimary))

	assert.False(t, ctrl.Active())
	assert.Equal(t, state.Ink, ctrl.Buffer().At(55, 55))
	assert.Equal(t, state.Background, ctrl.Buffer().At(10, 100))

	img := test.WidgetRenderer(board).Objects()[0].(*canvas.Image)
	require.NotNil(t, img.Image)
	assert.Equal(t, image.Rect(0, 0, state.CanvasWidth, state.CanvasHeight), img.Image.Bounds())
}

func TestCanvasWidgetIgnoresSecondaryButton(t *testing.T) {
	board, ctrl := newTestBoard(t, false)

	board.MouseDown(mouse(10, 10, desktop.MouseButtonSecondary))
	assert.False(t, ctrl.Active())
}

func TestCanvasWidgetDragEndClosesStroke(t *testing.T) {
	board, ctrl := newTestBoard(t, false)
	ctrl.SelectTool(state.ToolRectangle)

	board.MouseDown(mouse(20, 20, desktop.MouseButtonPrimary))
	board.Dragged(dragTo(80, 80))
	require.True(t, ctrl.Active())
	board.DragEnd()

	assert.False(t, ctrl.Active())
	assert.Equal(t, state.Ink, ctrl.Buffer().At(80, 50))
}

func TestCanvasWidgetResizeStretchesBuffer(t *testing.T) {
	board, ctrl := newTestBoard(t, false)
	board.Resize(fyne.NewSize(300, 200))

	assert.Equal(t, 300, ctrl.Buffer().Width())
	assert.Equal(t, 200, ctrl.Buffer().Height())
}

func TestReadOnlyCanvasWidget(t *testing.T) {
	board, ctrl := newTestBoard(t, true)
	ctrl.SelectTool(state.ToolFreehand)

	board.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	board.Dragged(dragTo(200, 200))
	board.MouseUp(mouse(200, 200, desktop.MouseButtonPrimary))
	board.Resize(fyne.NewSize(300, 200))

	assert.False(t, ctrl.Active())
	assert.Equal(t, state.Background, ctrl.Buffer().At(100, 100))
	assert.Equal(t, state.CanvasWidth, ctrl.Buffer().Width())
}

func TestToolPaletteSelectsTool(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	ctrl := state.NewController(10, 10)
	defer ctrl.Buffer().Close()
	icons, err := DefaultIcons(24)
	require.NoError(t, err)

	p := NewToolPalette(ctrl, icons)
	test.NewWindow(p)
	require.Len(t, p.buttons, len(state.Tools))
	assert.Equal(t, widget.HighImportance, p.buttons[state.ToolLine].Importance)

	for _, tool := range state.Tools {
		test.Tap(p.buttons[tool])
		assert.Equal(t, tool, ctrl.Tool())
		assert.Equal(t, widget.HighImportance, p.buttons[tool].Importance)
	}
	assert.Equal(t, widget.MediumImportance, p.buttons[state.ToolLine].Importance)
	assert.Equal(t, "Circle", p.buttons[state.ToolCircle].Text)
}

func TestShellLayout(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	icons, err := DefaultIcons(24)
	require.NoError(t, err)

	host := state.NewController(state.CanvasWidth, state.CanvasHeight)
	defer host.Buffer().Close()
	s := NewShell(a, config.Default(), host, icons, false)
	assert.NotNil(t, s.Palette)
	assert.Equal(t, "Paint App", s.Window.Title())
	s.SetStatus("Share link: localpaint://10.0.0.2:8888")
	assert.Equal(t, "Share link: localpaint://10.0.0.2:8888", s.Status())

	viewer := state.NewController(state.CanvasWidth, state.CanvasHeight)
	defer viewer.Buffer().Close()
	v := NewShell(a, config.Default(), viewer, icons, true)
	assert.Nil(t, v.Palette)
	assert.True(t, v.Canvas.readOnly)
}
