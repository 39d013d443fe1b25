package pipeline

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/matzehuels/deckgen/pkg/deck"
	"github.com/matzehuels/deckgen/pkg/errors"
	"github.com/matzehuels/deckgen/pkg/pptx"
)

// Encode serializes a presentation to pptx bytes.
func Encode(prs *pptx.Presentation) ([]byte, error) {
	var buf bytes.Buffer
	if err := prs.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncodeFailed, err, "serialize presentation")
	}
	return buf.Bytes(), nil
}

// Verify reopens encoded bytes and checks the archive holds the
// required package parts and at least one slide.
func Verify(data []byte) error {
	if err := pptx.VerifyArchive(data); err != nil {
		return errors.Wrap(errors.ErrCodeVerifyFailed, err, "archive check failed")
	}
	return nil
}

// Filename derives the download filename from the payload search phrase:
// spaces become underscores, anything outside letters, digits, "-" and
// "_" is dropped, and the "_Presentation.pptx" suffix is appended.
func Filename(phrase string) string {
	if strings.TrimSpace(phrase) == "" {
		phrase = deck.DefaultSearchPhrase
	}

	var b strings.Builder
	for _, r := range phrase {
		switch {
		case r == ' ' || r == '\t':
			b.WriteRune('_')
		case r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}

	name := strings.Trim(b.String(), "_")
	if name == "" {
		name = strings.ReplaceAll(deck.DefaultSearchPhrase, " ", "_")
	}
	return name + "_Presentation.pptx"
}
