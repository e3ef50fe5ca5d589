package components

import (
	"image"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestStatusBar(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	sb := NewStatusBar()
	assert.Empty(t, sb.GetStatus())

	sb.SetStatus("render service returned 500")
	assert.Equal(t, "render service returned 500", sb.GetStatus())

	sb.SetStatus("")
	assert.Empty(t, sb.GetStatus())
}

func TestImageDisplayKeepsCurrentImage(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	id := NewImageDisplay()
	assert.False(t, id.HasImage())

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	id.SetImage(img)
	assert.True(t, id.HasImage())
	assert.Same(t, img, id.Image())

	id.SetImage(nil)
	assert.False(t, id.HasImage())
}

func TestToolbarAutoRefreshSyncDoesNotFire(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	tb := NewToolbar()
	toggled := 0
	tb.SetAutoRefreshHandler(func() { toggled++ })

	tb.SetAutoRefresh(true)
	assert.Zero(t, toggled)

	test.Tap(tb.autoRefresh)
	assert.Equal(t, 1, toggled)
}
