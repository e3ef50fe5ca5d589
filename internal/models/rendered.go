package models

import (
	"image"
	"sync"
	"sync/atomic"
	"time"
)

// RenderedFormula is an image returned by the render service
type RenderedFormula struct {
	Image      image.Image
	Source     string
	Sequence   uint64
	RenderedAt time.Time
}

// RenderSlot holds the displayed formula image and hands out request
// sequence numbers. Only the completion for the most recently issued
// sequence number is accepted.
type RenderSlot struct {
	issued atomic.Uint64

	mu      sync.RWMutex
	current *RenderedFormula
}

func NewRenderSlot() *RenderSlot {
	return &RenderSlot{}
}

// Next issues a new sequence number, superseding all earlier ones
func (s *RenderSlot) Next() uint64 {
	return s.issued.Add(1)
}

// Latest returns the most recently issued sequence number
func (s *RenderSlot) Latest() uint64 {
	return s.issued.Load()
}

// IsCurrent reports whether seq is still the latest issued request
func (s *RenderSlot) IsCurrent(seq uint64) bool {
	return seq == s.issued.Load()
}

// Accept stores r if its sequence number is still current
func (s *RenderSlot) Accept(r *RenderedFormula) bool {
	if r == nil || !s.IsCurrent(r.Sequence) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = r
	return true
}

// Current returns the displayed formula, nil before the first success
func (s *RenderSlot) Current() *RenderedFormula {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
