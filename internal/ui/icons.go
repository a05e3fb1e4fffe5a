package ui

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"path"

	"MyLocalPaint/internal/state"

	"fyne.io/fyne/v2"
	xdraw "golang.org/x/image/draw"
)

//go:embed assets/*.png
var assets embed.FS

var ErrIconMissing = errors.New("icon missing")

var iconFiles = map[state.ToolKind]string{
	state.ToolLine:      "assets/line.png",
	state.ToolFreehand:  "assets/freehand.png",
	state.ToolRectangle: "assets/rectangle.png",
	state.ToolCircle:    "assets/circle.png",
	state.ToolEraser:    "assets/eraser.png",
}

// DefaultIcons loads the palette icons bundled with the binary.
func DefaultIcons(size int) (map[state.ToolKind]fyne.Resource, error) {
	return LoadIcons(assets, size)
}

// LoadIcons reads one PNG per tool from fsys and scales it to size×size.
// Any missing or unreadable icon fails the whole load.
func LoadIcons(fsys fs.FS, size int) (map[state.ToolKind]fyne.Resource, error) {
	icons := make(map[state.ToolKind]fyne.Resource, len(state.Tools))
	for _, tool := range state.Tools {
		name, ok := iconFiles[tool]
		if !ok {
			return nil, fmt.Errorf("%w: no icon for %s", ErrIconMissing, tool)
		}
		res, err := loadIcon(fsys, name, size)
		if err != nil {
			return nil, err
		}
		icons[tool] = res
	}
	return icons, nil
}

func loadIcon(fsys fs.FS, name string, size int) (fyne.Resource, error) {
	f, err := fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrIconMissing, name)
	}
	if err != nil {
		return nil, fmt.Errorf("open icon %s: %w", name, err)
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode icon %s: %w", name, err)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode icon %s: %w", name, err)
	}
	return fyne.NewStaticResource(path.Base(name), buf.Bytes()), nil
}
