package state

import (
	"image"
	"log"
)

const (
	CanvasWidth  = 600
	CanvasHeight = 600
)

// Controller maps pointer events to raster mutations. It is not safe for
// concurrent use; every call must come from the UI goroutine.
type Controller struct {
	buf    *Raster
	tool   ToolKind
	stroke *Stroke
	clock  clock

	// OnRefresh is called after every change to the buffer.
	OnRefresh func()
	// OnOp receives every locally issued op, stamped with session and seq.
	OnOp func(Op)
}

func NewController(width, height int) *Controller {
	return &Controller{
		buf:   NewRaster(width, height, Background),
		tool:  ToolLine,
		clock: newClock(),
	}
}

func (c *Controller) Tool() ToolKind { return c.tool }
func (c *Controller) Active() bool { return c.stroke != nil }
func (c *Controller) Buffer() *Raster { return c.buf }
func (c *Controller) Session() string { return c.clock.session }

// Image returns the current buffer for display.
func (c *Controller) Image() (image.Image, error) {
	return c.buf.Image()
}

func (c *Controller) SelectTool(t ToolKind) {
	c.selectTool(t)
	c.emit(Op{Type: OpSelect, Tool: t})
}

func (c *Controller) PointerDown(p image.Point) {
	c.pointerDown(p)
	c.emit(Op{Type: OpDown, Tool: c.stroke.Tool, X: p.X, Y: p.Y})
}

func (c *Controller) PointerMove(p image.Point) {
	if c.stroke == nil {
		return
	}
	c.pointerMove(p)
	c.emit(Op{Type: OpMove, Tool: c.stroke.Tool, X: p.X, Y: p.Y})
}

func (c *Controller) PointerUp(p image.Point) {
	if c.stroke == nil {
		return
	}
	tool := c.stroke.Tool
	c.pointerUp()
	c.emit(Op{Type: OpUp, Tool: tool, X: p.X, Y: p.Y})
}

// Resize stretches the buffer to the new canvas size. The result is lossy
// and repeated resizes compound the loss. An active stroke is abandoned.
func (c *Controller) Resize(width, height int) {
	if !c.resize(width, height) {
		return
	}
	c.emit(Op{Type: OpResize, W: width, H: height})
}

func (c *Controller) selectTool(t ToolKind) {
	c.tool = t
}

func (c *Controller) pointerDown(p image.Point) {
	if c.stroke != nil {
		c.pointerUp()
	}
	s := &Stroke{
		Tool:     c.tool,
		Color:    Ink,
		Anchor:   p,
		Previous: p,
		Last:     p,
	}
	if s.Tool == ToolEraser {
		s.Color = Background
	}
	if s.Tool.previews() {
		s.Snapshot = c.buf.Clone()
	}
	c.stroke = s
}

func (c *Controller) pointerMove(p image.Point) {
	s := c.stroke
	s.Last = p
	s.Moved = true

	switch s.Tool {
	case ToolLine:
		c.buf.CopyFrom(s.Snapshot)
		c.buf.Line(s.Anchor, p, s.Color, StrokeWidth)
	case ToolFreehand:
		c.buf.Line(s.Previous, p, s.Color, StrokeWidth)
		s.Previous = p
	case ToolRectangle:
		c.buf.CopyFrom(s.Snapshot)
		c.buf.Rectangle(s.Anchor, p, s.Color, StrokeWidth)
	case ToolCircle:
		c.buf.CopyFrom(s.Snapshot)
		center, axes := ellipseBox(s.Anchor, p)
		c.buf.Ellipse(center, axes, s.Color, StrokeWidth)
	case ToolEraser:
		c.buf.FillRect(eraserRect(p), s.Color)
	}
	c.refresh()
}

func (c *Controller) pointerUp() {
	if s := c.stroke; s != nil && s.Snapshot != nil {
		if err := s.Snapshot.Close(); err != nil {
			log.Printf("[CANVAS] Failed to release stroke snapshot: %v", err)
		}
	}
	c.stroke = nil
}

func (c *Controller) resize(width, height int) bool {
	if width <= 0 || height <= 0 || (width == c.buf.Width() && height == c.buf.Height()) {
		return false
	}
	if c.stroke != nil {
		log.Printf("[CANVAS] Resize to %dx%d aborts the active %s stroke", width, height, c.stroke.Tool)
		c.pointerUp()
	}
	c.buf.Resize(width, height)
	c.refresh()
	return true
}

func (c *Controller) refresh() {
	if c.OnRefresh != nil {
		c.OnRefresh()
	}
}

func (c *Controller) emit(op Op) {
	if c.OnOp == nil {
		return
	}
	c.OnOp(c.clock.stamp(op))
}

// ellipseBox returns the centre and radii of the ellipse inscribed in the
// box spanned by a and b.
func ellipseBox(a, b image.Point) (center, axes image.Point) {
	center = image.Pt((a.X+b.X)/2, (a.Y+b.Y)/2)
	axes = image.Pt(abs(b.X-a.X)/2, abs(b.Y-a.Y)/2)
	return center, axes
}

func eraserRect(p image.Point) image.Rectangle {
	half := EraserSize / 2
	return image.Rect(p.X-half, p.Y-half, p.X+half, p.Y+half)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

