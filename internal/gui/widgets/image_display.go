package widgets

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 500
	ImageAreaHeight = 400
)

// ImageDisplay shows two images side by side in a split.
type ImageDisplay struct {
	container *container.Split
	left      *canvas.Image
	right     *canvas.Image
}

func NewImageDisplay(leftTitle, rightTitle string) *ImageDisplay {
	d := &ImageDisplay{
		left:  newContainedImage(),
		right: newContainedImage(),
	}

	d.container = container.NewHSplit(
		container.NewBorder(widget.NewRichTextFromMarkdown("**"+leftTitle+"**"), nil, nil, nil, d.left),
		container.NewBorder(widget.NewRichTextFromMarkdown("**"+rightTitle+"**"), nil, nil, nil, d.right),
	)
	d.container.SetOffset(0.5)
	return d
}

// NewImageView returns a single letterboxed image for tabs that show one
// picture.
func NewImageView() *canvas.Image {
	return newContainedImage()
}

func newContainedImage() *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	img.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))
	return img
}

func (d *ImageDisplay) GetContainer() fyne.CanvasObject {
	return d.container
}

func (d *ImageDisplay) SetLeft(img image.Image) {
	d.left.Image = img
	d.left.Refresh()
}

func (d *ImageDisplay) SetRight(img image.Image) {
	d.right.Image = img
	d.right.Refresh()
}
