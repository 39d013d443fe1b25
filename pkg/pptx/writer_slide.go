package pptx

import (
	"archive/zip"
	"fmt"
	"math"
	"strings"
)

// Cell inset constants in EMU: 0.1in left/right, 0.05in top/bottom.
const (
	cellMarginLR = 91440
	cellMarginTB = 45720
)

// relCursor hands out slide relationship ids in emission order. The
// slide XML and its .rels part run the same traversal, so ids agree.
type relCursor struct {
	next int
}

func newRelCursor() *relCursor {
	// rId1 is the slide layout.
	return &relCursor{next: 2}
}

func (c *relCursor) take() string {
	id := fmt.Sprintf("rId%d", c.next)
	c.next++
	return id
}

// forEachRel visits every relationship consumer of the slide in the
// order the shape emitters claim ids: shapes first to last, pictures
// before the runs of text-bearing shapes, table cells row-major.
func forEachRel(s *Slide, pic func(*Picture), link func(url string)) {
	visitParagraphs := func(paras []Paragraph) {
		for _, para := range paras {
			for _, run := range para.Runs {
				if run.Hyperlink != "" {
					link(run.Hyperlink)
				}
			}
		}
	}
	for _, shape := range s.shapes {
		switch sh := shape.(type) {
		case *Picture:
			pic(sh)
		case *TextBox:
			visitParagraphs(sh.Paragraphs)
		case *Placeholder:
			visitParagraphs(sh.Paragraphs)
		case *Table:
			for _, row := range sh.Rows {
				for _, cell := range row.Cells {
					visitParagraphs(cell.Paragraphs)
				}
			}
		}
	}
}

func (w *writer) writeSlide(zw *zip.Writer, slide *Slide, slideNum int) error {
	var shapesXML strings.Builder
	shapeID := 2 // 1 is reserved for the group shape
	cur := newRelCursor()

	for _, shape := range slide.shapes {
		switch sh := shape.(type) {
		case *TextBox:
			shapesXML.WriteString(w.textBoxXML(sh, &shapeID, cur))
		case *Placeholder:
			shapesXML.WriteString(w.placeholderXML(sh, &shapeID, cur))
		case *Picture:
			shapesXML.WriteString(w.pictureXML(sh, &shapeID, cur))
		case *Table:
			shapesXML.WriteString(w.tableXML(sh, &shapeID, cur))
		case *AutoShape:
			shapesXML.WriteString(w.autoShapeXML(sh, &shapeID))
		case *Line:
			shapesXML.WriteString(w.lineXML(sh, &shapeID))
		}
	}

	bgXML := ""
	if slide.Background != "" {
		bgXML = fmt.Sprintf(`    <p:bg>
      <p:bgPr>
        <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
        <a:effectLst/>
      </p:bgPr>
    </p:bg>
`, hexRGB(slide.Background))
	}

	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
%s    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, bgXML, shapesXML.String())

	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/slide%d.xml", slideNum), content)
}

func (w *writer) writeSlideRels(zw *zip.Writer, slide *Slide, slideNum int) error {
	var rels strings.Builder
	fmt.Fprintf(&rels, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="%s">
  <Relationship Id="rId1" Type="%s" Target="../slideLayouts/slideLayout1.xml"/>`,
		nsRelationships, relTypeSlideLayout)

	cur := newRelCursor()
	forEachRel(slide,
		func(pic *Picture) {
			fmt.Fprintf(&rels, `
  <Relationship Id="%s" Type="%s" Target="../media/image%d.%s"/>`,
				cur.take(), relTypeImage, w.media[pic], pictureExt(pic))
		},
		func(url string) {
			fmt.Fprintf(&rels, `
  <Relationship Id="%s" Type="%s" Target="%s" TargetMode="External"/>`,
				cur.take(), relTypeHyperlink, xmlEscape(url))
		},
	)

	rels.WriteString(`
</Relationships>`)
	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slideNum), rels.String())
}

func (w *writer) writeMedia(zw *zip.Writer) error {
	for _, slide := range w.p.slides {
		for _, shape := range slide.shapes {
			pic, ok := shape.(*Picture)
			if !ok {
				continue
			}
			fw, err := zw.Create(fmt.Sprintf("ppt/media/image%d.%s", w.media[pic], pictureExt(pic)))
			if err != nil {
				return err
			}
			if _, err := fw.Write(pic.Data); err != nil {
				return err
			}
		}
	}
	return nil
}

// --- Text ---

func fontSz(f Font) int {
	size := f.Size
	if size <= 0 {
		size = 18
	}
	return int(math.Round(size * 100))
}

func (w *writer) runXML(run Run, cur *relCursor) string {
	attrs := fmt.Sprintf(` lang="en-US" sz="%d" dirty="0"`, fontSz(run.Font))
	if run.Font.Bold {
		attrs += ` b="1"`
	}
	if run.Font.Italic {
		attrs += ` i="1"`
	}
	if run.Font.Underline {
		attrs += ` u="sng"`
	}

	solidFill := ""
	if run.Font.Color != "" {
		solidFill = fmt.Sprintf(`
              <a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, hexRGB(run.Font.Color))
	}

	latin := ""
	if run.Font.Name != "" {
		latin = fmt.Sprintf(`
              <a:latin typeface="%s"/>`, xmlEscape(run.Font.Name))
	}

	hlink := ""
	if run.Hyperlink != "" {
		hlink = fmt.Sprintf(`
              <a:hlinkClick r:id="%s"/>`, cur.take())
	}

	return fmt.Sprintf(`            <a:r>
              <a:rPr%s>%s%s%s
              </a:rPr>
              <a:t>%s</a:t>
            </a:r>
`, attrs, solidFill, latin, hlink, xmlEscape(run.Text))
}

func (w *writer) paragraphXML(para Paragraph, cur *relCursor) string {
	algn := ""
	if para.Align != "" {
		algn = fmt.Sprintf(` algn="%s"`, para.Align)
	}

	var runs strings.Builder
	for _, run := range para.Runs {
		runs.WriteString(w.runXML(run, cur))
	}

	return fmt.Sprintf(`          <a:p>
            <a:pPr%s/>
%s          </a:p>
`, algn, runs.String())
}

func anchorAttr(a Anchor) string {
	if a == "" {
		return ""
	}
	return fmt.Sprintf(` anchor="%s"`, a)
}

func wrapAttr(wrap bool) string {
	if wrap {
		return "square"
	}
	return "none"
}

func autofitXML(scale int) string {
	if scale >= AutofitNormal {
		return `<a:normAutofit/>`
	}
	if scale > 0 {
		return fmt.Sprintf(`<a:normAutofit fontScale="%d"/>`, scale)
	}
	return ""
}

func (w *writer) textBoxXML(s *TextBox, shapeID *int, cur *relCursor) string {
	id := *shapeID
	*shapeID++

	name := s.Name
	if name == "" {
		name = fmt.Sprintf("TextBox %d", id)
	}

	var paras strings.Builder
	for _, para := range s.Paragraphs {
		paras.WriteString(w.paragraphXML(para, cur))
	}

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvSpPr txBox="1"/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
        </p:spPr>
        <p:txBody>
          <a:bodyPr wrap="%s"%s>%s</a:bodyPr>
          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
`, id, xmlEscape(name),
		s.Box.X, s.Box.Y, s.Box.W, s.Box.H,
		wrapAttr(s.WordWrap), anchorAttr(s.Anchor), autofitXML(s.AutofitScale),
		paras.String())
}

func (w *writer) placeholderXML(s *Placeholder, shapeID *int, cur *relCursor) string {
	id := *shapeID
	*shapeID++

	name := s.Name()
	var paras strings.Builder
	for _, para := range s.Paragraphs {
		paras.WriteString(w.paragraphXML(para, cur))
	}

	idxAttr := ""
	if s.Index > 0 {
		idxAttr = fmt.Sprintf(` idx="%d"`, s.Index)
	}

	line := ""
	if s.Outline != "" {
		pts := s.OutlinePts
		if pts <= 0 {
			pts = 1
		}
		line = fmt.Sprintf(`
          <a:ln w="%d"><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:ln>`,
			Point(pts), hexRGB(s.Outline))
	}

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvSpPr>
            <a:spLocks noGrp="1"/>
          </p:cNvSpPr>
          <p:nvPr>
            <p:ph type="%s"%s/>
          </p:nvPr>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>%s
        </p:spPr>
        <p:txBody>
          <a:bodyPr%s/>
          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
`, id, xmlEscape(name),
		s.Kind, idxAttr,
		s.Box.X, s.Box.Y, s.Box.W, s.Box.H, line,
		anchorAttr(s.Anchor),
		paras.String())
}

// Name labels the placeholder by role for authoring tools.
func (s *Placeholder) Name() string {
	if s.Kind == PlaceholderTitle {
		return "Title 1"
	}
	return fmt.Sprintf("Content Placeholder %d", s.Index+1)
}

// --- Picture ---

func (w *writer) pictureXML(s *Picture, shapeID *int, cur *relCursor) string {
	id := *shapeID
	*shapeID++

	name := s.Name
	if name == "" {
		name = fmt.Sprintf("Picture %d", id)
	}

	return fmt.Sprintf(`      <p:pic>
        <p:nvPicPr>
          <p:cNvPr id="%d" name="%s" descr="%s"/>
          <p:cNvPicPr>
            <a:picLocks noChangeAspect="1"/>
          </p:cNvPicPr>
          <p:nvPr/>
        </p:nvPicPr>
        <p:blipFill>
          <a:blip r:embed="%s"/>
          <a:stretch>
            <a:fillRect/>
          </a:stretch>
        </p:blipFill>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
        </p:spPr>
      </p:pic>
`, id, xmlEscape(name), xmlEscape(s.AltText),
		cur.take(),
		s.Box.X, s.Box.Y, s.Box.W, s.Box.H)
}

// --- Table ---

func (w *writer) tableXML(s *Table, shapeID *int, cur *relCursor) string {
	id := *shapeID
	*shapeID++

	name := s.Name
	if name == "" {
		name = fmt.Sprintf("Table %d", id)
	}

	var gridCols strings.Builder
	for _, width := range s.ColWidths {
		fmt.Fprintf(&gridCols, `            <a:gridCol w="%d"/>
`, width)
	}

	var rowsXML strings.Builder
	for _, row := range s.Rows {
		fmt.Fprintf(&rowsXML, `            <a:tr h="%d">
`, row.Height)
		for _, cell := range row.Cells {
			rowsXML.WriteString(w.tableCellXML(cell, cur))
		}
		rowsXML.WriteString("            </a:tr>\n")
	}

	return fmt.Sprintf(`      <p:graphicFrame>
        <p:nvGraphicFramePr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvGraphicFramePr>
            <a:graphicFrameLocks noGrp="1"/>
          </p:cNvGraphicFramePr>
          <p:nvPr/>
        </p:nvGraphicFramePr>
        <p:xfrm>
          <a:off x="%d" y="%d"/>
          <a:ext cx="%d" cy="%d"/>
        </p:xfrm>
        <a:graphic>
          <a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">
            <a:tbl>
              <a:tblPr firstRow="1" bandRow="0"/>
              <a:tblGrid>
%s              </a:tblGrid>
%s            </a:tbl>
          </a:graphicData>
        </a:graphic>
      </p:graphicFrame>
`, id, xmlEscape(name),
		s.Box.X, s.Box.Y, s.Box.W, s.Box.H,
		gridCols.String(), rowsXML.String())
}

func (w *writer) tableCellXML(cell TableCell, cur *relCursor) string {
	var body strings.Builder
	if len(cell.Paragraphs) == 0 {
		// A table cell must carry at least one paragraph.
		body.WriteString("                  <a:p/>\n")
	}
	for _, para := range cell.Paragraphs {
		algn := ""
		if para.Align != "" {
			algn = fmt.Sprintf(` algn="%s"`, para.Align)
		}
		fmt.Fprintf(&body, `                  <a:p>
                    <a:pPr%s/>
`, algn)
		for _, run := range para.Runs {
			body.WriteString(w.cellRunXML(run, cur))
		}
		body.WriteString("                  </a:p>\n")
	}

	anchor := cell.Anchor
	if anchor == "" {
		anchor = AnchorMiddle
	}

	fill := ""
	if cell.Fill != "" {
		fill = fmt.Sprintf(`
                  <a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, hexRGB(cell.Fill))
	}

	return fmt.Sprintf(`              <a:tc>
                <a:txBody>
                  <a:bodyPr/>
                  <a:lstStyle/>
%s                </a:txBody>
                <a:tcPr marL="%d" marR="%d" marT="%d" marB="%d" anchor="%s">%s
                </a:tcPr>
              </a:tc>
`, body.String(), cellMarginLR, cellMarginLR, cellMarginTB, cellMarginTB, anchor, fill)
}

func (w *writer) cellRunXML(run Run, cur *relCursor) string {
	attrs := fmt.Sprintf(` lang="en-US" sz="%d" dirty="0"`, fontSz(run.Font))
	if run.Font.Bold {
		attrs += ` b="1"`
	}
	if run.Font.Underline {
		attrs += ` u="sng"`
	}

	solidFill := ""
	if run.Font.Color != "" {
		solidFill = fmt.Sprintf(`
                      <a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, hexRGB(run.Font.Color))
	}

	hlink := ""
	if run.Hyperlink != "" {
		hlink = fmt.Sprintf(`
                      <a:hlinkClick r:id="%s"/>`, cur.take())
	}

	return fmt.Sprintf(`                    <a:r>
                      <a:rPr%s>%s%s
                      </a:rPr>
                      <a:t>%s</a:t>
                    </a:r>
`, attrs, solidFill, hlink, xmlEscape(run.Text))
}

// --- Auto shape and line ---

func (w *writer) autoShapeXML(s *AutoShape, shapeID *int) string {
	id := *shapeID
	*shapeID++

	name := s.Name
	if name == "" {
		name = fmt.Sprintf("Shape %d", id)
	}

	preset := s.Preset
	if preset == "" {
		preset = "rect"
	}

	fill := ""
	if s.Fill != "" {
		fill = fmt.Sprintf(`          <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
`, hexRGB(s.Fill))
	}

	line := ""
	if s.Line != "" {
		pts := s.LinePts
		if pts <= 0 {
			pts = 1
		}
		line = fmt.Sprintf(`          <a:ln w="%d"><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:ln>
`, Point(pts), hexRGB(s.Line))
	}

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvSpPr/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="%s">
            <a:avLst/>
          </a:prstGeom>
%s%s        </p:spPr>
      </p:sp>
`, id, xmlEscape(name),
		s.Box.X, s.Box.Y, s.Box.W, s.Box.H,
		preset,
		fill, line)
}

func (w *writer) lineXML(s *Line, shapeID *int) string {
	id := *shapeID
	*shapeID++

	name := s.Name
	if name == "" {
		name = fmt.Sprintf("Line %d", id)
	}

	color := s.Color
	if color == "" {
		color = "#FFFFFF"
	}
	pts := s.WidthPts
	if pts <= 0 {
		pts = 1
	}

	return fmt.Sprintf(`      <p:cxnSp>
        <p:nvCxnSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvCxnSpPr/>
          <p:nvPr/>
        </p:nvCxnSpPr>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="line">
            <a:avLst/>
          </a:prstGeom>
          <a:ln w="%d">
            <a:solidFill>
              <a:srgbClr val="%s"/>
            </a:solidFill>
          </a:ln>
        </p:spPr>
      </p:cxnSp>
`, id, xmlEscape(name),
		s.Box.X, s.Box.Y, s.Box.W, s.Box.H,
		Point(pts),
		hexRGB(color))
}
