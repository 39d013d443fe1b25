package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// writer tracks per-write state: the media index assigned to each
// picture, global across slides.
type writer struct {
	p     *Presentation
	media map[*Picture]int
}

// WriteTo encodes the presentation as a PPTX archive. The presentation
// is not modified and may be written multiple times.
func (p *Presentation) WriteTo(out io.Writer) error {
	if err := p.Validate(); err != nil {
		return err
	}

	w := &writer{p: p, media: map[*Picture]int{}}
	idx := 1
	for _, slide := range p.slides {
		for _, shape := range slide.shapes {
			if pic, ok := shape.(*Picture); ok {
				w.media[pic] = idx
				idx++
			}
		}
	}

	zw := zip.NewWriter(out)

	if err := w.writeContentTypes(zw); err != nil {
		return err
	}
	if err := w.writeRootRels(zw); err != nil {
		return err
	}
	if err := w.writeAppProperties(zw); err != nil {
		return err
	}
	if err := w.writeCoreProperties(zw); err != nil {
		return err
	}
	if err := w.writePresentation(zw); err != nil {
		return err
	}
	if err := w.writePresentationRels(zw); err != nil {
		return err
	}
	if err := w.writePresProps(zw); err != nil {
		return err
	}
	if err := w.writeViewProps(zw); err != nil {
		return err
	}
	if err := w.writeTableStyles(zw); err != nil {
		return err
	}
	if err := w.writeSlideMaster(zw); err != nil {
		return err
	}
	if err := w.writeSlideLayout(zw); err != nil {
		return err
	}
	if err := w.writeTheme(zw); err != nil {
		return err
	}

	for i, slide := range p.slides {
		if err := w.writeSlide(zw, slide, i+1); err != nil {
			return err
		}
		if err := w.writeSlideRels(zw, slide, i+1); err != nil {
			return err
		}
	}

	if err := w.writeMedia(zw); err != nil {
		return err
	}

	return zw.Close()
}

// Save writes the presentation to a file, creating parent directories.
// A failed write removes the partial file.
func (p *Presentation) Save(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	writeErr := p.WriteTo(f)
	closeErr := f.Close()

	if writeErr != nil {
		os.Remove(path)
		return writeErr
	}
	return closeErr
}
