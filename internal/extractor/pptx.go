package extractor

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/nguyentantai21042004/slide-narrator/internal/models"
)

const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
	corePropsPart    = "docProps/core.xml"
)

type pptxParser struct{}

// NewPPTXParser returns a parser for Office Open XML presentations
func NewPPTXParser() DeckParser {
	return pptxParser{}
}

// Parse walks the slides in presentation order. Each slide yields the text of its
// text-bearing shapes in shape order, followed by the row-major cell text of its tables.
func (pptxParser) Parse(data []byte) (models.SlideCollection, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return models.SlideCollection{}, fmt.Errorf("open archive: %w", err)
	}

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	slideParts, err := slideOrder(files)
	if err != nil {
		return models.SlideCollection{}, err
	}

	coll := models.SlideCollection{Title: deckTitle(files)}
	for i, part := range slideParts {
		raw, err := readPart(files, part)
		if err != nil {
			return models.SlideCollection{}, err
		}
		root, err := parseXML(raw)
		if err != nil {
			return models.SlideCollection{}, fmt.Errorf("parse %s: %w", part, err)
		}

		coll.Slides = append(coll.Slides, models.Slide{
			Index:     i + 1,
			Fragments: slideFragments(root),
		})
	}

	return coll, nil
}

// slideOrder resolves p:sldIdLst through the presentation relationships
func slideOrder(files map[string]*zip.File) ([]string, error) {
	raw, err := readPart(files, presentationPart)
	if err != nil {
		return nil, err
	}
	pres, err := parseXML(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", presentationPart, err)
	}

	rawRels, err := readPart(files, presentationRels)
	if err != nil {
		return nil, err
	}
	rels, err := parseXML(rawRels)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", presentationRels, err)
	}

	targets := make(map[string]string)
	if list := rels.find("Relationships"); list != nil {
		for _, r := range list.children {
			if r.name == "Relationship" {
				targets[r.attr("Id", false)] = r.attr("Target", false)
			}
		}
	}

	var parts []string
	idList := pres.find("sldIdLst")
	if idList == nil {
		return parts, nil
	}
	for _, id := range idList.children {
		if id.name != "sldId" {
			continue
		}
		rid := id.attr("id", true)
		target, ok := targets[rid]
		if !ok {
			return nil, fmt.Errorf("slide relationship %q not found", rid)
		}
		parts = append(parts, resolveTarget(target))
	}
	return parts, nil
}

func resolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join("ppt", target))
}

func deckTitle(files map[string]*zip.File) string {
	raw, err := readPart(files, corePropsPart)
	if err != nil {
		return ""
	}
	root, err := parseXML(raw)
	if err != nil {
		return ""
	}
	if t := root.find("title"); t != nil {
		return strings.TrimSpace(t.text)
	}
	return ""
}

func readPart(files map[string]*zip.File, name string) ([]byte, error) {
	f, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("file %s not found in archive", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func slideFragments(root *node) []string {
	tree := root.find("spTree")
	if tree == nil {
		return nil
	}

	var shapes, cells []string
	collectShapes(tree, &shapes, &cells)
	return append(shapes, cells...)
}

// collectShapes appends shape text and table cell text separately so that all
// table content ends up after the slide's shape text. Group shapes are descended.
func collectShapes(tree *node, shapes, cells *[]string) {
	for _, sh := range tree.children {
		switch sh.name {
		case "sp":
			body := sh.child("txBody")
			if body == nil {
				continue
			}
			if text := bodyText(body); strings.TrimSpace(text) != "" {
				*shapes = append(*shapes, text)
			}
		case "grpSp":
			collectShapes(sh, shapes, cells)
		case "graphicFrame":
			tbl := sh.find("tbl")
			if tbl == nil {
				continue
			}
			for _, tr := range tbl.children {
				if tr.name != "tr" {
					continue
				}
				for _, tc := range tr.children {
					if tc.name != "tc" {
						continue
					}
					body := tc.child("txBody")
					if body == nil {
						continue
					}
					if text := bodyText(body); strings.TrimSpace(text) != "" {
						*cells = append(*cells, text)
					}
				}
			}
		}
	}
}

// bodyText joins paragraphs with newlines; a:br becomes a newline as well
func bodyText(body *node) string {
	var paras []string
	for _, p := range body.children {
		if p.name != "p" {
			continue
		}
		var b strings.Builder
		for _, r := range p.children {
			switch r.name {
			case "r", "fld":
				if t := r.child("t"); t != nil {
					b.WriteString(t.text)
				}
			case "br":
				b.WriteString("\n")
			}
		}
		paras = append(paras, b.String())
	}
	return strings.Join(paras, "\n")
}
