// Package clipboard places formula snippets and rendered images on the
// system clipboard.
package clipboard

import (
	"fmt"
	"image"
	"sync"

	"formula-pad/internal/services"

	textclip "github.com/atotto/clipboard"
	imgclip "golang.design/x/clipboard"
)

// System is the desktop clipboard. Text goes through the platform text
// clipboard tools, images are written as PNG.
type System struct {
	initOnce sync.Once
	initErr  error
}

func NewSystem() *System {
	return &System{}
}

// SetText replaces the clipboard contents with text
func (s *System) SetText(text string) error {
	if textclip.Unsupported {
		return fmt.Errorf("text clipboard is not available on this system")
	}
	if err := textclip.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy text: %w", err)
	}
	return nil
}

// HasText reports whether the clipboard currently holds text
func (s *System) HasText() bool {
	if textclip.Unsupported {
		return false
	}
	text, err := textclip.ReadAll()
	return err == nil && text != ""
}

// SetImage replaces the clipboard contents with img encoded as PNG
func (s *System) SetImage(img image.Image) error {
	if err := s.init(); err != nil {
		return err
	}

	data, err := services.EncodePNG(img)
	if err != nil {
		return err
	}

	imgclip.Write(imgclip.FmtImage, data)
	return nil
}

func (s *System) init() error {
	s.initOnce.Do(func() {
		if err := imgclip.Init(); err != nil {
			s.initErr = fmt.Errorf("image clipboard is not available: %w", err)
		}
	})
	return s.initErr
}
