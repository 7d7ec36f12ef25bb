package gui

import (
	"image"

	"roi-edge-analyzer/internal/analysis"
	"roi-edge-analyzer/internal/gui/widgets"
	"roi-edge-analyzer/internal/logger"
	"roi-edge-analyzer/internal/roi"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	tabHome       = "Home"
	tabSelection  = "ROI Selection"
	tabProcessing = "Processing"
)

type View struct {
	window     fyne.Window
	controller *Controller

	homeImage      *canvas.Image
	homeLabel      *widget.Label
	loadButton     *widget.Button
	roiCanvas      *widgets.ROICanvas
	roiLabel       *widget.Label
	saveROIButton  *widget.Button
	display        *widgets.ImageDisplay
	parameterPanel *widgets.ParameterPanel
	analysisPanel  *widgets.AnalysisPanel
	tabs           *container.AppTabs
}

func NewView(window fyne.Window, selector *roi.Selector, log logger.Logger) *View {
	v := &View{window: window}
	v.setupComponents(selector, log)
	v.setupLayout()
	return v
}

func (v *View) setupComponents(selector *roi.Selector, log logger.Logger) {
	v.homeImage = widgets.NewImageView()
	v.homeLabel = widget.NewLabel("No image loaded")
	v.loadButton = widget.NewButtonWithIcon("Load Image", theme.FolderOpenIcon(), nil)

	v.roiCanvas = widgets.NewROICanvas(selector, log)
	v.roiLabel = widget.NewLabel("Drag over the image to select a region")
	v.saveROIButton = widget.NewButtonWithIcon("Save ROI", theme.DocumentSaveIcon(), nil)
	v.saveROIButton.Importance = widget.HighImportance

	v.display = widgets.NewImageDisplay("Selected ROI", "Processed ROI")
	v.parameterPanel = widgets.NewParameterPanel()
	v.analysisPanel = widgets.NewAnalysisPanel()
}

func (v *View) setupLayout() {
	home := container.NewBorder(
		container.NewHBox(v.loadButton, v.homeLabel),
		nil, nil, nil,
		v.homeImage,
	)

	selection := container.NewBorder(
		nil,
		container.NewBorder(nil, nil, nil, v.saveROIButton, v.roiLabel),
		nil, nil,
		v.roiCanvas,
	)

	processing := container.NewBorder(
		nil,
		container.NewVBox(
			widget.NewAccordion(widget.NewAccordionItem("Filter", v.parameterPanel.GetContainer())),
			v.analysisPanel.GetContainer(),
		),
		nil, nil,
		v.display.GetContainer(),
	)

	v.tabs = container.NewAppTabs(
		container.NewTabItemWithIcon(tabHome, theme.HomeIcon(), home),
		container.NewTabItemWithIcon(tabSelection, theme.ViewFullScreenIcon(), selection),
		container.NewTabItemWithIcon(tabProcessing, theme.MediaPlayIcon(), processing),
	)
}

func (v *View) SetController(c *Controller) {
	v.controller = c

	v.loadButton.OnTapped = c.LoadImage
	v.saveROIButton.OnTapped = c.SaveROI
	v.roiCanvas.SetOnCommit(c.SelectionCommitted)

	v.analysisPanel.SetProcessHandler(c.ProcessAndAnalyze)
	v.analysisPanel.SetDetailsHandler(c.ShowDetails)
	v.analysisPanel.SetSaveHandler(c.SaveFigure)

	v.parameterPanel.SetParameterChangeHandler(c.UpdateParameter)
	v.parameterPanel.SetResetHandler(c.ResetParameters)
}

func (v *View) Content() fyne.CanvasObject {
	return v.tabs
}

func (v *View) SetSourceImage(img image.Image, caption string) {
	v.homeImage.Image = img
	v.homeImage.Refresh()
	v.homeLabel.SetText(caption)
	v.roiCanvas.SetImage(img)
	v.roiLabel.SetText("Drag over the image to select a region")
	v.display.SetLeft(nil)
	v.display.SetRight(nil)
	v.analysisPanel.Clear()
}

func (v *View) SetSelection(text string) {
	v.roiLabel.SetText(text)
}

func (v *View) SetAnalysis(roiImg, processed image.Image, res analysis.Result, stats analysis.Stats) {
	v.display.SetLeft(roiImg)
	v.display.SetRight(processed)
	v.analysisPanel.SetResult(res, stats)
}

func (v *View) UpdateParameterPanel(params map[string]interface{}) {
	v.parameterPanel.UpdateParameters(params)
}

func (v *View) SetStatus(status string) {
	v.analysisPanel.SetStatus(status)
}

func (v *View) SetBusy(busy bool) {
	v.analysisPanel.SetBusy(busy)
}

func (v *View) SelectTab(name string) {
	for _, item := range v.tabs.Items {
		if item.Text == name {
			v.tabs.Select(item)
			return
		}
	}
}

func (v *View) ShowError(err error) {
	dialog.ShowError(err, v.window)
}

func (v *View) ShowInfo(title, message string) {
	dialog.ShowInformation(title, message, v.window)
}

func (v *View) ShowFileDialog(callback func(fyne.URIReadCloser, error)) {
	dialog.ShowFileOpen(callback, v.window)
}

func (v *View) ShowSaveDialog(name string, callback func(fyne.URIWriteCloser, error)) {
	d := dialog.NewFileSave(callback, v.window)
	d.SetFileName(name)
	d.Show()
}

// ShowFigure opens the analysis figure in a resizable dialog.
func (v *View) ShowFigure(fig image.Image) {
	img := canvas.NewImageFromImage(fig)
	img.FillMode = canvas.ImageFillContain
	b := fig.Bounds()
	img.SetMinSize(fyne.NewSize(float32(b.Dx())*0.7, float32(b.Dy())*0.7))

	d := dialog.NewCustom("Detailed Analysis", "Close", container.NewScroll(img), v.window)
	d.Resize(fyne.NewSize(float32(b.Dx())*0.75, float32(b.Dy())*0.75+80))
	d.Show()
}

func (v *View) Show() {
	v.window.SetContent(v.tabs)
	v.window.Show()
}
