package components

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 480
	ImageAreaHeight = 160
)

// ImageDisplay shows the rendered formula at its natural size, centred and
// scrollable when it does not fit.
type ImageDisplay struct {
	container   *fyne.Container
	image       *canvas.Image
	placeholder *widget.Label
	background  *canvas.Rectangle

	current image.Image
}

// NewImageDisplay creates a new image display component
func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{}
	display.createComponents()
	display.setupLayout()
	return display
}

func (id *ImageDisplay) createComponents() {
	id.image = canvas.NewImageFromImage(nil)
	id.image.FillMode = canvas.ImageFillOriginal
	id.image.ScaleMode = canvas.ImageScaleSmooth
	id.image.Hide()

	id.placeholder = widget.NewLabel("The rendered formula will appear here")
	id.placeholder.Alignment = fyne.TextAlignCenter

	id.background = canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	id.background.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))
}

func (id *ImageDisplay) setupLayout() {
	content := container.NewCenter(container.NewStack(id.placeholder, id.image))
	id.container = container.NewStack(
		id.background,
		container.NewScroll(content),
	)
}

// SetImage replaces the displayed formula. nil shows the placeholder.
func (id *ImageDisplay) SetImage(img image.Image) {
	id.current = img
	id.image.Image = img

	if img == nil {
		id.image.Hide()
		id.placeholder.Show()
	} else {
		id.placeholder.Hide()
		id.image.Show()
	}
	id.image.Refresh()
}

// Image returns the displayed formula, nil when none
func (id *ImageDisplay) Image() image.Image {
	return id.current
}

// HasImage reports whether a formula is displayed
func (id *ImageDisplay) HasImage() bool {
	return id.current != nil
}

// GetContainer returns the image display container
func (id *ImageDisplay) GetContainer() *fyne.Container {
	return id.container
}
