package widgets

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type sliderSpec struct {
	key      string
	label    string
	min, max float64
	step     float64
	integer  bool
	odd      bool
	decimals int
}

// filterSliders lists the tunable stages of the enhancement chain in order.
var filterSliders = []sliderSpec{
	{key: "clahe_clip", label: "CLAHE Clip", min: 0.5, max: 10, step: 0.5, decimals: 1},
	{key: "clahe_tiles", label: "CLAHE Tiles", min: 2, max: 16, step: 1, integer: true},
	{key: "blur_kernel", label: "Blur Kernel", min: 1, max: 31, step: 2, integer: true, odd: true},
	{key: "bilateral_diameter", label: "Bilateral Diameter", min: 1, max: 25, step: 1, integer: true},
	{key: "bilateral_sigma_color", label: "Bilateral Sigma Color", min: 5, max: 200, step: 5},
	{key: "gabor_ksize", label: "Gabor Size", min: 3, max: 41, step: 1, integer: true},
	{key: "gabor_sigma", label: "Gabor Sigma", min: 0.5, max: 15, step: 0.1, decimals: 1},
	{key: "gabor_lambda", label: "Gabor Wavelength", min: 2, max: 30, step: 0.5, decimals: 1},
	{key: "gabor_gamma", label: "Gabor Aspect", min: 0.1, max: 1, step: 0.05, decimals: 2},
	{key: "erode_kernel", label: "Erode Kernel", min: 1, max: 11, step: 1, integer: true},
	{key: "dilate_kernel", label: "Dilate Kernel", min: 1, max: 11, step: 1, integer: true},
}

// ParameterPanel edits the filter parameters. Changes are reported through
// the change handler; the panel never validates on its own.
type ParameterPanel struct {
	container    *fyne.Container
	sliders      map[string]*widget.Slider
	labels       map[string]*widget.Label
	specs        map[string]sliderSpec
	thresholdChk *widget.Check
	resetButton  *widget.Button

	changeHandler func(string, interface{})
	resetHandler  func()
	updating      bool
}

func NewParameterPanel() *ParameterPanel {
	pp := &ParameterPanel{
		sliders: make(map[string]*widget.Slider),
		labels:  make(map[string]*widget.Label),
		specs:   make(map[string]sliderSpec),
	}
	pp.createWidgets()
	return pp
}

func (pp *ParameterPanel) createWidgets() {
	grid := container.NewGridWithColumns(3)
	for _, spec := range filterSliders {
		spec := spec
		s := widget.NewSlider(spec.min, spec.max)
		s.Step = spec.step
		l := widget.NewLabel(spec.label)

		s.OnChanged = func(v float64) { pp.onSlider(spec, v) }

		pp.sliders[spec.key] = s
		pp.labels[spec.key] = l
		pp.specs[spec.key] = spec
		grid.Add(container.NewVBox(l, s))
	}

	pp.thresholdChk = widget.NewCheck("Adaptive Threshold", func(checked bool) {
		if !pp.updating && pp.changeHandler != nil {
			pp.changeHandler("adaptive_threshold", checked)
		}
	})
	pp.resetButton = widget.NewButton("Reset", func() {
		if pp.resetHandler != nil {
			pp.resetHandler()
		}
	})

	pp.container = container.NewVBox(
		widget.NewLabel("Filter Parameters:"),
		grid,
		container.NewHBox(pp.thresholdChk, pp.resetButton),
	)
}

func (pp *ParameterPanel) onSlider(spec sliderSpec, v float64) {
	var value interface{} = v
	if spec.integer {
		n := int(v)
		if spec.odd && n%2 == 0 {
			n++
		}
		value = n
	}
	pp.labels[spec.key].SetText(formatLabel(spec, value))

	if !pp.updating && pp.changeHandler != nil {
		pp.changeHandler(spec.key, value)
	}
}

func formatLabel(spec sliderSpec, value interface{}) string {
	switch v := value.(type) {
	case int:
		return spec.label + ": " + strconv.Itoa(v)
	case float64:
		return spec.label + ": " + strconv.FormatFloat(v, 'f', spec.decimals, 64)
	}
	return spec.label
}

func (pp *ParameterPanel) GetContainer() *fyne.Container {
	return pp.container
}

func (pp *ParameterPanel) SetParameterChangeHandler(handler func(string, interface{})) {
	pp.changeHandler = handler
}

func (pp *ParameterPanel) SetResetHandler(handler func()) {
	pp.resetHandler = handler
}

// UpdateParameters moves the controls to params without reporting changes.
func (pp *ParameterPanel) UpdateParameters(params map[string]interface{}) {
	pp.updating = true
	defer func() { pp.updating = false }()

	for key, s := range pp.sliders {
		var v float64
		switch n := params[key].(type) {
		case int:
			v = float64(n)
		case float64:
			v = n
		default:
			continue
		}
		s.SetValue(v)
		pp.onSlider(pp.specs[key], v)
	}
	if b, ok := params["adaptive_threshold"].(bool); ok {
		pp.thresholdChk.SetChecked(b)
	}
}
