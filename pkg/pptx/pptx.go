// Package pptx is a write-only encoder for PowerPoint presentation files
// (.pptx) following the Office Open XML standard.
//
// It builds the minimal package a deck needs: one static master, layout
// and theme, plus one part per slide with pictures, tables, text and
// hyperlinks. Reading or editing existing files is out of scope.
package pptx

import (
	"errors"
	"time"
)

// Slide canvas in EMU. 16 x 9 inches, the widescreen frame every deck
// in this module targets.
const (
	SlideWidthEMU  int64 = 16 * emuPerInch
	SlideHeightEMU int64 = 9 * emuPerInch
)

// Properties holds the document metadata written to docProps.
type Properties struct {
	Title       string
	Subject     string
	Creator     string
	Description string
	Company     string
	Application string
	Created     time.Time
	Modified    time.Time
}

// Layout is the slide canvas size in EMU.
type Layout struct {
	CX int64
	CY int64
}

// Presentation is an in-memory deck, built slide by slide and written
// once.
type Presentation struct {
	Properties Properties
	layout     Layout
	slides     []*Slide
}

// New creates an empty presentation on the 16x9 canvas.
func New() *Presentation {
	now := time.Now()
	return &Presentation{
		Properties: Properties{
			Creator:     "deckgen",
			Application: "deckgen",
			Created:     now,
			Modified:    now,
		},
		layout: Layout{CX: SlideWidthEMU, CY: SlideHeightEMU},
	}
}

// Layout returns the slide canvas size.
func (p *Presentation) Layout() Layout {
	return p.layout
}

// SetLayout overrides the slide canvas size.
func (p *Presentation) SetLayout(cx, cy int64) error {
	if cx <= 0 || cy <= 0 {
		return errors.New("pptx: layout dimensions must be positive")
	}
	p.layout = Layout{CX: cx, CY: cy}
	return nil
}

// AddSlide appends a new empty slide and returns it.
func (p *Presentation) AddSlide() *Slide {
	s := &Slide{}
	p.slides = append(p.slides, s)
	return s
}

// Slides returns the slides in document order.
func (p *Presentation) Slides() []*Slide {
	return p.slides
}

// SlideCount returns the number of slides.
func (p *Presentation) SlideCount() int {
	return len(p.slides)
}

// Slide is one page of the deck.
type Slide struct {
	// Name labels the slide in authoring tools. Optional.
	Name string

	// Background is a solid fill color "#RRGGBB". Empty inherits the
	// master background.
	Background string

	shapes []Shape
}

// Add appends a shape to the slide. Shapes render in insertion order,
// later shapes on top.
func (s *Slide) Add(shape Shape) {
	s.shapes = append(s.shapes, shape)
}

// Shapes returns the slide's shapes in z-order.
func (s *Slide) Shapes() []Shape {
	return s.shapes
}

// Remove deletes the shape at index i, preserving order.
func (s *Slide) Remove(i int) error {
	if i < 0 || i >= len(s.shapes) {
		return errors.New("pptx: shape index out of range")
	}
	s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
	return nil
}
