package ui

import (
	"MyLocalPaint/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var toolLabels = map[state.ToolKind]string{
	state.ToolLine:      "Line",
	state.ToolFreehand:  "Freehand",
	state.ToolRectangle: "Rectangle",
	state.ToolCircle:    "Circle",
	state.ToolEraser:    "Eraser",
}

// --- Tool palette ---
type ToolPalette struct {
	widget.BaseWidget
	ctrl    *state.Controller
	buttons map[state.ToolKind]*widget.Button
	box     *fyne.Container
}

func NewToolPalette(ctrl *state.Controller, icons map[state.ToolKind]fyne.Resource) *ToolPalette {
	p := &ToolPalette{
		ctrl:    ctrl,
		buttons: make(map[state.ToolKind]*widget.Button, len(state.Tools)),
		box:     container.NewVBox(),
	}
	for _, tool := range state.Tools {
		btn := widget.NewButtonWithIcon(toolLabels[tool], icons[tool], func() {
			p.ctrl.SelectTool(tool)
			p.highlight()
		})
		p.buttons[tool] = btn
		p.box.Add(btn)
	}
	p.highlight()
	p.ExtendBaseWidget(p)
	return p
}

func (p *ToolPalette) highlight() {
	for tool, btn := range p.buttons {
		if tool == p.ctrl.Tool() {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

func (p *ToolPalette) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewPadded(p.box))
}
