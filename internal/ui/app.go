package ui

import (
	"MyLocalPaint/internal/config"
	"MyLocalPaint/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Shell is the main window: canvas in the centre, tool palette on the
// right and a status line underneath. Viewers get no palette.
type Shell struct {
	Window  fyne.Window
	Canvas  *CanvasWidget
	Palette *ToolPalette
	status  *widget.Label
}

func NewShell(a fyne.App, cfg config.Config, ctrl *state.Controller, icons map[state.ToolKind]fyne.Resource, viewer bool) *Shell {
	s := &Shell{
		Window: a.NewWindow(cfg.Title),
		Canvas: NewCanvasWidget(ctrl, fyne.NewSize(float32(cfg.CanvasWidth), float32(cfg.CanvasHeight)), viewer),
		status: widget.NewLabel("Ready"),
	}

	var right fyne.CanvasObject
	if !viewer {
		s.Palette = NewToolPalette(ctrl, icons)
		right = container.NewVBox(s.Palette)
	}

	s.Window.SetContent(container.NewBorder(nil, s.status, nil, right, s.Canvas))
	s.Window.SetFixedSize(true)
	s.Window.CenterOnScreen()
	return s
}

// SetStatus must be called on the UI goroutine.
func (s *Shell) SetStatus(text string) {
	s.status.SetText(text)
}

// PostStatus is SetStatus for background goroutines.
func (s *Shell) PostStatus(text string) {
	fyne.Do(func() {
		s.status.SetText(text)
	})
}

func (s *Shell) Status() string {
	return s.status.Text
}

func (s *Shell) ShowAndRun() {
	s.Window.ShowAndRun()
}
