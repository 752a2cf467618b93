// Package testutil builds small slide-deck fixtures for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"strings"
)

// Slide describes the content of one fixture slide
type Slide struct {
	// Texts become one text shape each; "\n" splits paragraphs
	Texts []string
	// Table rows of cell text, rendered as a graphic frame after the text shapes
	Table [][]string
	// Group texts are placed inside a group shape
	Group []string
}

// Deck describes a fixture presentation
type Deck struct {
	Title  string
	Slides []Slide
	// ReverseParts stores slide N in part slide(len-N+1).xml so that part names
	// and presentation order disagree
	ReverseParts bool
}

const (
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// BuildPPTX renders d as a minimal .pptx archive
func BuildPPTX(d Deck) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name, body string) {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			panic(err)
		}
	}

	write("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`)

	var ids, rels strings.Builder
	for i, s := range d.Slides {
		part := i + 1
		if d.ReverseParts {
			part = len(d.Slides) - i
		}
		fmt.Fprintf(&ids, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, 10+i)
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="%s/slide" Target="slides/slide%d.xml"/>`, 10+i, nsR, part)
		write(fmt.Sprintf("ppt/slides/slide%d.xml", part), slideXML(s))
	}

	write("ppt/presentation.xml", fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:a="%s" xmlns:p="%s" xmlns:r="%s"><p:sldIdLst>%s</p:sldIdLst></p:presentation>`,
		nsA, nsP, nsR, ids.String()))
	write("ppt/_rels/presentation.xml.rels", fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">%s</Relationships>`, rels.String()))

	if d.Title != "" {
		write("docProps/core.xml", fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>%s</dc:title></cp:coreProperties>`,
			html.EscapeString(d.Title)))
	}

	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func slideXML(s Slide) string {
	var tree strings.Builder
	for _, t := range s.Texts {
		tree.WriteString(shapeXML(t))
	}
	if len(s.Group) > 0 {
		tree.WriteString("<p:grpSp><p:nvGrpSpPr/><p:grpSpPr/>")
		for _, t := range s.Group {
			tree.WriteString(shapeXML(t))
		}
		tree.WriteString("</p:grpSp>")
	}
	if len(s.Table) > 0 {
		tree.WriteString(`<p:graphicFrame><p:nvGraphicFramePr/><a:graphic><a:graphicData><a:tbl>`)
		for _, row := range s.Table {
			tree.WriteString("<a:tr>")
			for _, cell := range row {
				tree.WriteString("<a:tc>" + txBodyXML("a", cell) + "</a:tc>")
			}
			tree.WriteString("</a:tr>")
		}
		tree.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
	}
	// a picture carries no text and must be ignored
	tree.WriteString(`<p:pic><p:nvPicPr/><p:blipFill/></p:pic>`)

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="%s" xmlns:p="%s" xmlns:r="%s"><p:cSld><p:spTree><p:nvGrpSpPr/><p:grpSpPr/>%s</p:spTree></p:cSld></p:sld>`,
		nsA, nsP, nsR, tree.String())
}

func shapeXML(text string) string {
	return "<p:sp><p:nvSpPr/><p:spPr/>" + txBodyXML("p", text) + "</p:sp>"
}

func txBodyXML(prefix, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<%s:txBody><a:bodyPr/>", prefix)
	for _, para := range strings.Split(text, "\n") {
		b.WriteString("<a:p>")
		if para != "" {
			fmt.Fprintf(&b, "<a:r><a:rPr/><a:t>%s</a:t></a:r>", html.EscapeString(para))
		}
		b.WriteString("</a:p>")
	}
	fmt.Fprintf(&b, "</%s:txBody>", prefix)
	return b.String()
}
