package extractor

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/ajstarks/deck"
	"github.com/ajstarks/decksh"

	"github.com/nguyentantai21042004/slide-narrator/internal/models"
)

type deckMarkupParser struct{}

// NewDeckMarkupParser returns a parser for ajstarks/deck XML markup
func NewDeckMarkupParser() DeckParser {
	return deckMarkupParser{}
}

func (deckMarkupParser) Parse(data []byte) (models.SlideCollection, error) {
	var d deck.Deck
	if err := xml.Unmarshal(data, &d); err != nil {
		return models.SlideCollection{}, fmt.Errorf("parse deck markup: %w", err)
	}

	coll := models.SlideCollection{Title: strings.TrimSpace(d.Title)}
	for i, slide := range d.Slide {
		var frags []string
		for _, t := range slide.Text {
			if strings.TrimSpace(t.Tdata) != "" {
				frags = append(frags, t.Tdata)
			}
		}
		for _, l := range slide.List {
			var items []string
			for _, li := range l.Li {
				if strings.TrimSpace(li.ListText) != "" {
					items = append(items, li.ListText)
				}
			}
			if len(items) > 0 {
				frags = append(frags, strings.Join(items, "\n"))
			}
		}
		coll.Slides = append(coll.Slides, models.Slide{Index: i + 1, Fragments: frags})
	}

	return coll, nil
}

type deckshParser struct {
	markup deckMarkupParser
}

// NewDeckshParser returns a parser for decksh source; the source is compiled to
// deck markup first.
func NewDeckshParser() DeckParser {
	return deckshParser{}
}

func (p deckshParser) Parse(data []byte) (models.SlideCollection, error) {
	var deckXML bytes.Buffer
	if err := decksh.Process(&deckXML, bytes.NewReader(data)); err != nil {
		return models.SlideCollection{}, fmt.Errorf("decksh processing failed: %w", err)
	}
	return p.markup.Parse(deckXML.Bytes())
}
