package models

// Slide holds the text fragments of one slide. Index is 1-based.
type Slide struct {
	Index     int
	Fragments []string
}

// SlideCollection is an ordered set of slides in presentation order.
type SlideCollection struct {
	Title  string
	Slides []Slide
}

// Len returns the number of slides
func (c SlideCollection) Len() int {
	return len(c.Slides)
}

// Source identifies a deck either by filesystem path or by in-memory bytes.
// Name is used for the output base name and parser selection; it falls back to Path.
type Source struct {
	Name string
	Path string
	Data []byte
}

// FileName returns the name used to derive output artifact names
func (s Source) FileName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Path
}
