package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar shows the message of the last failed operation
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	modeLabel   *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("")
	sb.statusLabel.Wrapping = fyne.TextWrapWord
	sb.statusLabel.Importance = widget.DangerImportance

	sb.modeLabel = widget.NewLabel("")
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewBorder(nil, nil, nil, sb.modeLabel, sb.statusLabel)
}

// SetStatus replaces the status message, empty clears it
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetAutoRefresh shows whether edits render automatically
func (sb *StatusBar) SetAutoRefresh(enabled bool) {
	if enabled {
		sb.modeLabel.SetText("Auto refresh")
	} else {
		sb.modeLabel.SetText("Manual refresh")
	}
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
