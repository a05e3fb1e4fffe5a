package ui

import (
	"image"
	"log"

	"MyLocalPaint/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// CanvasWidget shows a controller's buffer and feeds it pointer events.
// A read-only widget only displays; its buffer is driven from elsewhere.
type CanvasWidget struct {
	widget.BaseWidget
	ctrl     *state.Controller
	minSize  fyne.Size
	readOnly bool
	last     image.Point
}

var _ fyne.Widget = (*CanvasWidget)(nil)
var _ fyne.Draggable = (*CanvasWidget)(nil)
var _ desktop.Mouseable = (*CanvasWidget)(nil)

func NewCanvasWidget(ctrl *state.Controller, minSize fyne.Size, readOnly bool) *CanvasWidget {
	c := &CanvasWidget{ctrl: ctrl, minSize: minSize, readOnly: readOnly}
	c.ExtendBaseWidget(c)
	ctrl.OnRefresh = c.Refresh
	return c
}

func toPixel(p fyne.Position) image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

func (c *CanvasWidget) MouseDown(e *desktop.MouseEvent) {
	if c.readOnly || e.Button != desktop.MouseButtonPrimary {
		return
	}
	c.last = toPixel(e.Position)
	c.ctrl.PointerDown(c.last)
}

func (c *CanvasWidget) Dragged(e *fyne.DragEvent) {
	if c.readOnly {
		return
	}
	c.last = toPixel(e.Position)
	c.ctrl.PointerMove(c.last)
}

func (c *CanvasWidget) MouseUp(e *desktop.MouseEvent) {
	if c.readOnly || e.Button != desktop.MouseButtonPrimary {
		return
	}
	c.last = toPixel(e.Position)
	c.ctrl.PointerUp(c.last)
}

// DragEnd closes the stroke when the button is released outside the widget
// and MouseUp never arrives.
func (c *CanvasWidget) DragEnd() {
	if c.readOnly {
		return
	}
	c.ctrl.PointerUp(c.last)
}

func (c *CanvasWidget) MouseIn(*desktop.MouseEvent) {}
func (c *CanvasWidget) MouseOut() {}
func (c *CanvasWidget) MouseMoved(*desktop.MouseEvent) {}

func (c *CanvasWidget) CreateRenderer() fyne.WidgetRenderer {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillStretch
	img.ScaleMode = canvas.ImageScalePixels
	r := &canvasWidgetRenderer{board: c, image: img}
	r.update()
	return r
}

type canvasWidgetRenderer struct {
	board *CanvasWidget
	image *canvas.Image
}

func (r *canvasWidgetRenderer) update() {
	img, err := r.board.ctrl.Image()
	if err != nil {
		log.Printf("[CANVAS] Cannot display buffer: %v", err)
		return
	}
	r.image.Image = img
}

// Layout stretches the buffer to the widget, which degrades it when the
// size actually changes.
func (r *canvasWidgetRenderer) Layout(size fyne.Size) {
	r.image.Resize(size)
	if !r.board.readOnly {
		r.board.ctrl.Resize(int(size.Width), int(size.Height))
	}
}

func (r *canvasWidgetRenderer) MinSize() fyne.Size {
	return r.board.minSize
}

func (r *canvasWidgetRenderer) Refresh() {
	r.update()
	canvas.Refresh(r.image)
}

func (r *canvasWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.image}
}

func (r *canvasWidgetRenderer) Destroy() {}
