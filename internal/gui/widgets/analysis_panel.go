package widgets

import (
	"fmt"
	"image/color"

	"roi-edge-analyzer/internal/analysis"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// AnalysisPanel holds the processing actions and the numbers of the last
// analysis.
type AnalysisPanel struct {
	container     *fyne.Container
	processButton *widget.Button
	detailsButton *widget.Button
	saveButton    *widget.Button
	statusLabel   *widget.Label
	countLabel    *widget.Label
	sizeLabel     *widget.Label
	statsLabel    *widget.Label
	progress      *widget.ProgressBarInfinite

	processHandler func()
	detailsHandler func()
	saveHandler    func()
}

func NewAnalysisPanel() *AnalysisPanel {
	p := &AnalysisPanel{}
	p.createComponents()
	p.buildLayout()
	p.Clear()
	return p
}

func (p *AnalysisPanel) createComponents() {
	p.processButton = widget.NewButton("Process & Analyze", func() { call(p.processHandler) })
	p.processButton.Importance = widget.HighImportance

	p.detailsButton = widget.NewButton("Details", func() { call(p.detailsHandler) })
	p.saveButton = widget.NewButton("Save Figure", func() { call(p.saveHandler) })

	p.statusLabel = widget.NewLabel("Ready")
	p.countLabel = widget.NewLabel("")
	p.sizeLabel = widget.NewLabel("")
	p.statsLabel = widget.NewLabel("")

	p.progress = widget.NewProgressBarInfinite()
	p.progress.Hide()
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func (p *AnalysisPanel) buildLayout() {
	background := canvas.NewRectangle(color.RGBA{R: 250, G: 249, B: 245, A: 255})

	actions := container.NewHBox(p.processButton, p.detailsButton, p.saveButton)
	results := container.NewVBox(p.countLabel, p.sizeLabel, p.statsLabel)

	p.container = container.NewStack(
		background,
		container.NewPadded(container.NewVBox(
			container.NewBorder(nil, nil, actions, p.statusLabel),
			p.progress,
			widget.NewSeparator(),
			results,
		)),
	)
}

func (p *AnalysisPanel) GetContainer() *fyne.Container {
	return p.container
}

func (p *AnalysisPanel) SetProcessHandler(handler func()) { p.processHandler = handler }

func (p *AnalysisPanel) SetDetailsHandler(handler func()) { p.detailsHandler = handler }

func (p *AnalysisPanel) SetSaveHandler(handler func()) { p.saveHandler = handler }

func (p *AnalysisPanel) SetStatus(status string) {
	p.statusLabel.SetText(status)
}

// SetBusy disables the actions and shows the activity bar while a run is in
// progress.
func (p *AnalysisPanel) SetBusy(busy bool) {
	if busy {
		p.processButton.Disable()
		p.progress.Show()
		p.progress.Start()
		return
	}
	p.processButton.Enable()
	p.progress.Stop()
	p.progress.Hide()
}

func (p *AnalysisPanel) SetResult(res analysis.Result, stats analysis.Stats) {
	p.countLabel.SetText(fmt.Sprintf("Edge Count: %d", res.Count))
	p.sizeLabel.SetText(fmt.Sprintf("ROI Size: %dx%d", res.Width, res.Height))
	p.statsLabel.SetText(fmt.Sprintf("Intensity: mean %.1f | std %.1f | fill %.1f%%",
		stats.Mean, stats.StdDev, stats.Fill*100))
}

func (p *AnalysisPanel) Clear() {
	p.countLabel.SetText("Edge Count: --")
	p.sizeLabel.SetText("ROI Size: --")
	p.statsLabel.SetText("Intensity: --")
}
