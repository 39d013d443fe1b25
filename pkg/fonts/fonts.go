// Package fonts resolves the typefaces used for chart text.
//
// Charts are rasterized, so a concrete font face is needed at draw time.
// The package looks for a common system TTF first and falls back to a
// built-in bitmap face, which keeps rendering functional on machines
// without any of the candidate fonts installed.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Candidate TTF filenames in preference order.
var regularCandidates = []string{
	"DejaVuSans.ttf",
	"LiberationSans-Regular.ttf",
	"Arial.ttf",
	"FreeSans.ttf",
}

var boldCandidates = []string{
	"DejaVuSans-Bold.ttf",
	"LiberationSans-Bold.ttf",
	"Arial Bold.ttf",
	"FreeSansBold.ttf",
}

var (
	regularOnce sync.Once
	regularFont *truetype.Font

	boldOnce sync.Once
	boldFont *truetype.Font

	faceMu    sync.Mutex
	faceCache = map[faceKey]font.Face{}
)

type faceKey struct {
	bold bool
	size float64
}

// load finds and parses the first available candidate TTF. Returns nil
// when none can be found or parsed.
func load(candidates []string) *truetype.Font {
	for _, name := range candidates {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			continue
		}
		return f
	}
	return nil
}

func regular() *truetype.Font {
	regularOnce.Do(func() { regularFont = load(regularCandidates) })
	return regularFont
}

func bold() *truetype.Font {
	boldOnce.Do(func() {
		boldFont = load(boldCandidates)
		if boldFont == nil {
			// Fall back to the regular weight rather than the bitmap face.
			boldFont = regular()
		}
	})
	return boldFont
}

// Face returns a regular-weight face at the given point size.
func Face(size float64) font.Face {
	return newFace(false, size)
}

// BoldFace returns a bold face at the given point size. When no bold TTF
// is installed the regular weight is reused.
func BoldFace(size float64) font.Face {
	return newFace(true, size)
}

func newFace(wantBold bool, size float64) font.Face {
	faceMu.Lock()
	defer faceMu.Unlock()

	key := faceKey{bold: wantBold, size: size}
	if f, ok := faceCache[key]; ok {
		return f
	}

	var tf *truetype.Font
	if wantBold {
		tf = bold()
	} else {
		tf = regular()
	}

	var face font.Face
	if tf != nil {
		face = truetype.NewFace(tf, &truetype.Options{Size: size})
	} else {
		face = basicfont.Face7x13
	}

	faceCache[key] = face
	return face
}

// HasTrueType reports whether a scalable system font was found. When
// false, chart text renders with the fixed-size bitmap fallback.
func HasTrueType() bool {
	return regular() != nil
}
