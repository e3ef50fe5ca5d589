package models

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSlotAcceptsOnlyLatest(t *testing.T) {
	slot := NewRenderSlot()
	first := slot.Next()
	second := slot.Next()

	img := image.NewGray(image.Rect(0, 0, 1, 1))

	assert.False(t, slot.Accept(&RenderedFormula{Image: img, Sequence: first}))
	assert.Nil(t, slot.Current())

	assert.True(t, slot.Accept(&RenderedFormula{Image: img, Sequence: second}))
	assert.Equal(t, second, slot.Current().Sequence)
	assert.Equal(t, second, slot.Latest())
}

func TestRenderSlotRejectsNil(t *testing.T) {
	slot := NewRenderSlot()
	slot.Next()
	assert.False(t, slot.Accept(nil))
}
