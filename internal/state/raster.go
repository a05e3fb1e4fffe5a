package state

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

var ErrEmptyImage = errors.New("empty image")

// Raster is an 8-bit RGB pixel grid. Pixels live in an OpenCV matrix in BGR
// order; the drawing primitives clip to the matrix so callers may pass
// coordinates outside the buffer.
type Raster struct {
	mat gocv.Mat
}

func NewRaster(width, height int, bg color.RGBA) *Raster {
	return &Raster{
		mat: gocv.NewMatWithSizeFromScalar(scalar(bg), height, width, gocv.MatTypeCV8UC3),
	}
}

func scalar(c color.RGBA) gocv.Scalar {
	return gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0)
}

func (r *Raster) Width() int { return r.mat.Cols() }
func (r *Raster) Height() int { return r.mat.Rows() }

func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.mat.Cols(), r.mat.Rows())
}

func (r *Raster) Clone() *Raster {
	return &Raster{mat: r.mat.Clone()}
}

// CopyFrom overwrites r with the contents (and size) of src.
func (r *Raster) CopyFrom(src *Raster) {
	src.mat.CopyTo(&r.mat)
}

func (r *Raster) Line(a, b image.Point, c color.RGBA, width int) {
	gocv.Line(&r.mat, a, b, c, width)
}

// Rectangle draws an outline with a and b as opposite corners, both inclusive.
func (r *Raster) Rectangle(a, b image.Point, c color.RGBA, width int) {
	rect := image.Rectangle{Min: a, Max: b}.Canon()
	rect.Max = rect.Max.Add(image.Pt(1, 1))
	gocv.Rectangle(&r.mat, rect, c, width)
}

func (r *Raster) Ellipse(center, axes image.Point, c color.RGBA, width int) {
	gocv.Ellipse(&r.mat, center, axes, 0, 0, 360, c, width)
}

// FillRect paints rect clamped to the buffer. Rectangles entirely outside
// the buffer are ignored.
func (r *Raster) FillRect(rect image.Rectangle, c color.RGBA) {
	rect = rect.Canon().Intersect(r.Bounds())
	if rect.Empty() {
		return
	}
	region := r.mat.Region(rect)
	defer region.Close()
	region.SetTo(scalar(c))
}

// Resize stretches the buffer to width×height with bilinear resampling.
// Resizing to the current size, or to a non-positive size, does nothing.
func (r *Raster) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if width == r.Width() && height == r.Height() {
		return false
	}
	dst := gocv.NewMat()
	gocv.Resize(r.mat, &dst, image.Pt(width, height), 0, 0, gocv.InterpolationLinear)
	r.mat.Close()
	r.mat = dst
	return true
}

// Image returns an RGBA copy of the buffer suitable for display.
func (r *Raster) Image() (image.Image, error) {
	if r.mat.Empty() {
		return nil, ErrEmptyImage
	}
	return r.mat.ToImage()
}

// At returns the colour at (x, y), or the zero colour outside the buffer.
func (r *Raster) At(x, y int) color.RGBA {
	if !image.Pt(x, y).In(r.Bounds()) {
		return color.RGBA{}
	}
	return color.RGBA{
		R: r.mat.GetUCharAt(y, x*3+2),
		G: r.mat.GetUCharAt(y, x*3+1),
		B: r.mat.GetUCharAt(y, x*3+0),
		A: 255,
	}
}

// Bytes returns the raw BGR pixel data.
func (r *Raster) Bytes() []byte {
	return r.mat.ToBytes()
}

// EncodePNG losslessly encodes the buffer.
func (r *Raster) EncodePNG() ([]byte, error) {
	if r.mat.Empty() {
		return nil, ErrEmptyImage
	}
	buf, err := gocv.IMEncode(gocv.PNGFileExt, r.mat)
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	defer buf.Close()
	return append([]byte(nil), buf.GetBytes()...), nil
}

// DecodeRaster reads a buffer produced by EncodePNG.
func DecodeRaster(data []byte) (*Raster, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	if mat.Empty() {
		mat.Close()
		return nil, ErrEmptyImage
	}
	return &Raster{mat: mat}, nil
}

func (r *Raster) Close() error {
	return r.mat.Close()
}
