package state

import (
	"image"
	"image/color"
)

// ToolKind is the drawing mode applied to the next stroke.
type ToolKind int

const (
	ToolLine ToolKind = iota
	ToolFreehand
	ToolRectangle
	ToolCircle
	ToolEraser
)

// Tools lists every tool in palette order.
var Tools = []ToolKind{ToolLine, ToolFreehand, ToolRectangle, ToolCircle, ToolEraser}

func (t ToolKind) String() string {
	switch t {
	case ToolLine:
		return "line"
	case ToolFreehand:
		return "freehand"
	case ToolRectangle:
		return "rectangle"
	case ToolCircle:
		return "circle"
	case ToolEraser:
		return "eraser"
	}
	return "unknown"
}

// previews reports whether the tool redraws from a pre-stroke snapshot on
// every move instead of accumulating on the live buffer.
func (t ToolKind) previews() bool {
	return t == ToolLine || t == ToolRectangle || t == ToolCircle
}

var (
	Ink        = color.RGBA{A: 255}
	Background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

const (
	StrokeWidth = 2
	EraserSize  = 40
)

// Stroke is the transient state of one pointer-down to pointer-up drag.
type Stroke struct {
	Tool     ToolKind
	Color    color.RGBA
	Anchor   image.Point
	Previous image.Point
	Last     image.Point
	Moved    bool
	Snapshot *Raster // nil for Freehand and Eraser
}

type OpType string

const (
	OpSelect OpType = "select"
	OpDown   OpType = "down"
	OpMove   OpType = "move"
	OpUp     OpType = "up"
	OpResize OpType = "resize"
)

// Op is one controller input, recorded so another controller can replay it.
type Op struct {
	Type    OpType   `json:"type"`
	Tool    ToolKind `json:"tool"`
	X       int      `json:"x,omitempty"`
	Y       int      `json:"y,omitempty"`
	W       int      `json:"w,omitempty"`
	H       int      `json:"h,omitempty"`
	Seq     uint64   `json:"seq,omitempty"`
	Session string   `json:"session,omitempty"`
}

func (op Op) point() image.Point {
	return image.Pt(op.X, op.Y)
}
