// Package report writes the narration script as a Word document.
package report

import (
	"strconv"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/slide-narrator/internal/models"
)

const (
	fontName = "Malgun Gothic"
	fontSize = 12
)

// WriteDocx saves a document with the title, the narration script and an
// appendix holding the extracted text of every slide.
func WriteDocx(title, narration string, slides models.SlideCollection, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	doc.AddParagraph("")

	for _, para := range paragraphs(narration) {
		addStyledRun(doc.AddParagraph(""), para, false, fontSize)
	}

	if slides.Len() > 0 {
		doc.AddParagraph("")
		addStyledRun(doc.AddParagraph(""), "Slide text", true, 14)
		for _, s := range slides.Slides {
			addStyledRun(doc.AddParagraph(""), slideHeading(s.Index), true, fontSize)
			for _, frag := range s.Fragments {
				for _, line := range paragraphs(frag) {
					addStyledRun(doc.AddParagraph(""), line, false, fontSize)
				}
			}
		}
	}

	return doc.SaveTo(outputPath)
}

func slideHeading(index int) string {
	return "Slide " + strconv.Itoa(index)
}

// paragraphs splits on newlines and drops blank lines
func paragraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
