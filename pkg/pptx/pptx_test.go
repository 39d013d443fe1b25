package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

// tinyPNG is a 1x1 transparent PNG, enough for media round-trip checks.
var tinyPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4, 0x89, 0x00, 0x00, 0x00,
	0x0D, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9C, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82,
}

func encode(t *testing.T, p *Presentation) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	return buf.Bytes()
}

func openArchive(t *testing.T, data []byte) *zip.Reader {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reopen archive: %v", err)
	}
	return zr
}

func readPart(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				t.Fatalf("open part %s: %v", name, err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("read part %s: %v", name, err)
			}
			return string(data)
		}
	}
	t.Fatalf("part %s not found in archive", name)
	return ""
}

func hasPart(zr *zip.Reader, name string) bool {
	for _, f := range zr.File {
		if f.Name == name {
			return true
		}
	}
	return false
}

func TestWriteMinimalDeck(t *testing.T) {
	p := New()
	p.Properties.Title = "Quarterly Review"
	s := p.AddSlide()
	s.Add(&TextBox{
		Box:        Box{X: Inch(0.5), Y: Inch(0.2), W: Inch(15), H: Inch(0.8)},
		Paragraphs: []Paragraph{Text("Quarterly Review", Font{Size: 36, Bold: true, Color: "#FFFFFF"})},
		WordWrap:   true,
	})

	data := encode(t, p)
	zr := openArchive(t, data)

	required := []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/app.xml",
		"docProps/core.xml",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/presProps.xml",
		"ppt/viewProps.xml",
		"ppt/tableStyles.xml",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideMasters/_rels/slideMaster1.xml.rels",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/_rels/slide1.xml.rels",
	}
	for _, name := range required {
		if !hasPart(zr, name) {
			t.Errorf("archive missing %s", name)
		}
	}

	slideXML := readPart(t, zr, "ppt/slides/slide1.xml")
	if !strings.Contains(slideXML, "Quarterly Review") {
		t.Error("slide XML should contain the title text")
	}
	if !strings.Contains(slideXML, `sz="3600"`) {
		t.Error("slide XML should carry the 36pt run size")
	}

	presXML := readPart(t, zr, "ppt/presentation.xml")
	if !strings.Contains(presXML, `cx="14630400" cy="8229600"`) {
		t.Error("presentation should declare the 16x9in canvas")
	}

	coreXML := readPart(t, zr, "docProps/core.xml")
	if !strings.Contains(coreXML, "<dc:title>Quarterly Review</dc:title>") {
		t.Error("core properties should carry the document title")
	}
}

func TestWriteEmptyPresentationFails(t *testing.T) {
	p := New()
	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err == nil {
		t.Fatal("writing a presentation without slides should fail")
	}
}

func TestValidate(t *testing.T) {
	withShape := func(sh Shape) *Presentation {
		p := New()
		p.AddSlide().Add(sh)
		return p
	}

	tests := []struct {
		name string
		p    *Presentation
		want string
	}{
		{
			"nil shape",
			func() *Presentation {
				p := New()
				p.AddSlide().Add(nil)
				return p
			}(),
			"shape is nil",
		},
		{
			"picture without data",
			withShape(&Picture{Box: Box{W: 1, H: 1}}),
			"no image data",
		},
		{
			"table cell mismatch",
			withShape(&Table{
				Box:       Box{W: 1, H: 1},
				ColWidths: []int64{100, 100},
				Rows:      []TableRow{{Height: 10, Cells: []TableCell{{}}}},
			}),
			"has 1 cells, want 2",
		},
		{
			"bad background",
			func() *Presentation {
				p := New()
				s := p.AddSlide()
				s.Background = "blue"
				s.Add(&TextBox{Paragraphs: []Paragraph{Text("x", Font{})}})
				return p
			}(),
			"background is not a hex color",
		},
		{
			"placeholder without kind",
			withShape(&Placeholder{Paragraphs: []Paragraph{Text("x", Font{})}}),
			"placeholder kind is empty",
		},
		{
			"text box without paragraphs",
			withShape(&TextBox{Box: Box{W: 1, H: 1}}),
			"no paragraphs",
		},
		{
			"negative dimensions",
			withShape(&TextBox{Box: Box{W: -1, H: 1}, Paragraphs: []Paragraph{Text("x", Font{})}}),
			"negative dimensions",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestSlideBackground(t *testing.T) {
	p := New()
	s := p.AddSlide()
	s.Background = "#0F1632"
	s.Add(&TextBox{Paragraphs: []Paragraph{Text("x", Font{})}})

	zr := openArchive(t, encode(t, p))
	slideXML := readPart(t, zr, "ppt/slides/slide1.xml")
	if !strings.Contains(slideXML, "<p:bg>") || !strings.Contains(slideXML, `<a:srgbClr val="0F1632"/>`) {
		t.Error("slide should carry a solid background fill")
	}
}

func TestPictureMediaAndRels(t *testing.T) {
	p := New()
	for i := 0; i < 2; i++ {
		s := p.AddSlide()
		s.Add(&Picture{
			Box:  Box{X: Inch(1), Y: Inch(1), W: Inch(4), H: Inch(3)},
			Data: tinyPNG,
		})
	}

	zr := openArchive(t, encode(t, p))

	for i := 1; i <= 2; i++ {
		media := readPart(t, zr, fmt.Sprintf("ppt/media/image%d.png", i))
		if !bytes.Equal([]byte(media), tinyPNG) {
			t.Errorf("media image%d.png bytes differ from input", i)
		}
	}

	rels1 := readPart(t, zr, "ppt/slides/_rels/slide1.xml.rels")
	if !strings.Contains(rels1, "../media/image1.png") {
		t.Error("slide 1 rels should target image1")
	}
	rels2 := readPart(t, zr, "ppt/slides/_rels/slide2.xml.rels")
	if !strings.Contains(rels2, "../media/image2.png") {
		t.Error("slide 2 rels should target image2")
	}

	ctXML := readPart(t, zr, "[Content_Types].xml")
	if !strings.Contains(ctXML, `Extension="png"`) {
		t.Error("content types should declare the png default")
	}
}

var relIDPattern = regexp.MustCompile(`r:(?:id|embed)="(rId\d+)"`)

func TestSlideRelIDsResolve(t *testing.T) {
	p := New()
	s := p.AddSlide()
	s.Add(&Picture{Box: Box{W: 1, H: 1}, Data: tinyPNG})
	s.Add(&TextBox{
		Paragraphs: []Paragraph{{Runs: []Run{
			{Text: "Reuters", Font: Font{Size: 12}, Hyperlink: "https://www.reuters.com"},
		}}},
	})
	s.Add(&Table{
		Box:       Box{W: Inch(4), H: Inch(1)},
		ColWidths: []int64{Inch(2), Inch(2)},
		Rows: []TableRow{{
			Height: Inch(0.4),
			Cells: []TableCell{
				{Paragraphs: []Paragraph{Text("Source", Font{Size: 12})}},
				{Paragraphs: []Paragraph{{Runs: []Run{
					{Text: "Bloomberg", Font: Font{Size: 12, Underline: true}, Hyperlink: "https://www.bloomberg.com"},
				}}}},
			},
		}},
	})

	zr := openArchive(t, encode(t, p))
	slideXML := readPart(t, zr, "ppt/slides/slide1.xml")
	relsXML := readPart(t, zr, "ppt/slides/_rels/slide1.xml.rels")

	used := relIDPattern.FindAllStringSubmatch(slideXML, -1)
	if len(used) != 3 {
		t.Fatalf("slide should reference 3 relationship ids, got %d", len(used))
	}
	seen := map[string]bool{}
	for _, m := range used {
		id := m[1]
		if seen[id] {
			t.Errorf("relationship id %s used twice in slide XML", id)
		}
		seen[id] = true
		if !strings.Contains(relsXML, `Id="`+id+`"`) {
			t.Errorf("slide rels missing entry for %s", id)
		}
	}

	if got := strings.Count(relsXML, `TargetMode="External"`); got != 2 {
		t.Errorf("slide rels should have 2 external hyperlinks, got %d", got)
	}
	if !strings.Contains(relsXML, "https://www.reuters.com") {
		t.Error("slide rels should carry the hyperlink target")
	}
}

func TestTableXML(t *testing.T) {
	p := New()
	s := p.AddSlide()
	s.Add(&Table{
		Box:       Box{X: Inch(1), Y: Inch(2), W: Inch(6), H: Inch(1)},
		ColWidths: []int64{Inch(2), Inch(2), Inch(2)},
		Rows: []TableRow{
			{Height: Inch(0.5), Cells: []TableCell{
				{Paragraphs: []Paragraph{Text("Theme", Font{Size: 12, Bold: true})}, Fill: "#44546A"},
				{Paragraphs: []Paragraph{Text("Count", Font{Size: 12, Bold: true})}, Fill: "#44546A"},
				{Paragraphs: []Paragraph{Text("A & B", Font{Size: 12, Bold: true})}, Fill: "#44546A"},
			}},
			{Height: Inch(0.4), Cells: []TableCell{
				{Paragraphs: []Paragraph{Text("Emissions", Font{Size: 12})}, Fill: "#2A3950"},
				{Paragraphs: []Paragraph{Text("12", Font{Size: 12})}},
				{},
			}},
		},
	})

	zr := openArchive(t, encode(t, p))
	slideXML := readPart(t, zr, "ppt/slides/slide1.xml")

	if got := strings.Count(slideXML, "<a:gridCol"); got != 3 {
		t.Errorf("expected 3 grid columns, got %d", got)
	}
	if got := strings.Count(slideXML, "<a:tr "); got != 2 {
		t.Errorf("expected 2 rows, got %d", got)
	}
	if !strings.Contains(slideXML, "A &amp; B") {
		t.Error("cell text should be XML-escaped")
	}
	if !strings.Contains(slideXML, `<a:srgbClr val="2A3950"/>`) {
		t.Error("zebra fill missing")
	}
	if !strings.Contains(slideXML, `anchor="ctr"`) {
		t.Error("cells should anchor to the middle by default")
	}
	if !strings.Contains(slideXML, `marL="91440"`) || !strings.Contains(slideXML, `marT="45720"`) {
		t.Error("cells should carry the fixed insets")
	}
	// An empty cell still needs a paragraph to satisfy the schema.
	if !strings.Contains(slideXML, "<a:p/>") {
		t.Error("empty cell should emit an empty paragraph")
	}
}

func TestAutoShapeAndLine(t *testing.T) {
	p := New()
	s := p.AddSlide()
	s.Add(&AutoShape{Box: Box{X: 0, Y: 0, W: Inch(2), H: Inch(0.1)}, Fill: "#007ACC"})
	s.Add(&Line{Box: Box{X: 0, Y: Inch(1), W: Inch(4), H: 0}, Color: "#9BC1E4", WidthPts: 2})

	zr := openArchive(t, encode(t, p))
	slideXML := readPart(t, zr, "ppt/slides/slide1.xml")

	if !strings.Contains(slideXML, `prst="rect"`) || !strings.Contains(slideXML, `val="007ACC"`) {
		t.Error("auto shape should render a filled rectangle")
	}
	if !strings.Contains(slideXML, "<p:cxnSp>") || !strings.Contains(slideXML, `prst="line"`) {
		t.Error("line connector missing")
	}
	if !strings.Contains(slideXML, `w="25400"`) {
		t.Error("2pt line should be 25400 EMU wide")
	}
}

func TestPlaceholderXML(t *testing.T) {
	p := New()
	s := p.AddSlide()
	s.Add(&Placeholder{
		Box:        Box{W: Inch(10), H: Inch(1)},
		Kind:       PlaceholderTitle,
		Paragraphs: []Paragraph{Text("Section", Font{Size: 32})},
		Outline:    "#44546A",
	})
	s.Add(&Placeholder{
		Box:        Box{W: Inch(10), H: Inch(4)},
		Kind:       PlaceholderBody,
		Index:      1,
		Paragraphs: []Paragraph{Text("Body", Font{Size: 18})},
	})

	zr := openArchive(t, encode(t, p))
	slideXML := readPart(t, zr, "ppt/slides/slide1.xml")

	if !strings.Contains(slideXML, `<p:ph type="title"/>`) {
		t.Error("title placeholder missing")
	}
	if !strings.Contains(slideXML, `<p:ph type="body" idx="1"/>`) {
		t.Error("body placeholder with index missing")
	}
	// Default outline weight is 1pt.
	if !strings.Contains(slideXML, `<a:ln w="12700"><a:solidFill><a:srgbClr val="44546A"/></a:solidFill></a:ln>`) {
		t.Error("title outline missing")
	}
}

func TestTextBoxAutofit(t *testing.T) {
	p := New()
	s := p.AddSlide()
	s.Add(&TextBox{
		Box:          Box{W: Inch(6), H: Inch(3)},
		Paragraphs:   []Paragraph{Text("Fit me", Font{})},
		WordWrap:     true,
		AutofitScale: AutofitNormal,
	})
	s.Add(&TextBox{
		Box:          Box{X: Inch(7), W: Inch(6), H: Inch(3)},
		Paragraphs:   []Paragraph{Text("Shrunk", Font{})},
		AutofitScale: 62500,
	})

	zr := openArchive(t, encode(t, p))
	slideXML := readPart(t, zr, "ppt/slides/slide1.xml")

	if !strings.Contains(slideXML, `<a:normAutofit/>`) {
		t.Error("bare normAutofit missing for AutofitNormal")
	}
	if !strings.Contains(slideXML, `<a:normAutofit fontScale="62500"/>`) {
		t.Error("scaled normAutofit missing")
	}
}

func TestDeterministicTimestamps(t *testing.T) {
	build := func() *Presentation {
		p := New()
		p.Properties.Created = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		p.Properties.Modified = p.Properties.Created
		s := p.AddSlide()
		s.Add(&TextBox{Paragraphs: []Paragraph{Text("x", Font{})}})
		return p
	}
	first := encode(t, build())
	second := encode(t, build())
	if !bytes.Equal(first, second) {
		t.Error("identical decks with pinned timestamps should encode identically")
	}
}

func TestSave(t *testing.T) {
	p := New()
	s := p.AddSlide()
	s.Add(&TextBox{Paragraphs: []Paragraph{Text("saved", Font{})}})

	path := filepath.Join(t.TempDir(), "out", "deck.pptx")
	if err := p.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Reopen from disk through the verify gate.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if err := VerifyArchive(data); err != nil {
		t.Errorf("saved archive failed verification: %v", err)
	}
}

func TestRemoveShape(t *testing.T) {
	s := &Slide{}
	a := &TextBox{Paragraphs: []Paragraph{Text("a", Font{})}}
	b := &TextBox{Paragraphs: []Paragraph{Text("b", Font{})}}
	s.Add(a)
	s.Add(b)

	if err := s.Remove(0); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(s.Shapes()) != 1 || s.Shapes()[0] != Shape(b) {
		t.Error("Remove should drop the first shape and keep order")
	}
	if err := s.Remove(5); err == nil {
		t.Error("out of range Remove should fail")
	}
}
