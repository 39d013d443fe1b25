package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// ArchiveInfo summarizes a generated archive after reopening it.
type ArchiveInfo struct {
	Parts  int
	Slides int
	Images int
	Size   int
}

// Inspect reopens encoded PPTX bytes as a zip archive and counts its
// parts. It fails when the container is not a readable archive.
func Inspect(data []byte) (*ArchiveInfo, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	info := &ArchiveInfo{Parts: len(zr.File), Size: len(data)}
	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml"):
			info.Slides++
		case strings.HasPrefix(f.Name, "ppt/media/"):
			info.Images++
		}
	}
	return info, nil
}

// VerifyArchive reopens encoded bytes and checks the package holds the
// required parts and at least one slide. Run after encoding, before the
// artifact leaves the process.
func VerifyArchive(data []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}

	required := []string{
		"[Content_Types].xml",
		"ppt/presentation.xml",
	}

	fileMap := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	hasSlide := false
	for name := range fileMap {
		if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
			hasSlide = true
			break
		}
	}
	if !hasSlide {
		return fmt.Errorf("no slides found in presentation")
	}

	return nil
}
