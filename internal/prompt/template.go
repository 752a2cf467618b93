// Package prompt builds the narration prompt sent to the language model.
package prompt

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

// Placeholder marks where the extracted slide text is inserted
const Placeholder = "{text}"

// Version is bumped whenever a built-in template body changes
const Version = "v1"

//go:embed templates/*.txt
var templateFS embed.FS

// Template is a fixed narration instruction with exactly one placeholder
type Template struct {
	Name    string
	Version string
	Body    string
}

var builtin = loadBuiltin()

func loadBuiltin() map[string]Template {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		panic(err)
	}

	out := make(map[string]Template, len(entries))
	for _, e := range entries {
		data, err := templateFS.ReadFile("templates/" + e.Name())
		if err != nil {
			panic(err)
		}
		name := strings.TrimSuffix(e.Name(), ".txt")
		body := "\n" + string(data)
		if n := strings.Count(body, Placeholder); n != 1 {
			panic(fmt.Sprintf("prompt template %s has %d placeholders, want 1", name, n))
		}
		out[name] = Template{Name: name, Version: Version, Body: body}
	}
	return out
}

// Lookup returns a built-in template by name
func Lookup(name string) (Template, error) {
	t, ok := builtin[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown prompt template %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return t, nil
}

// Names lists the built-in template names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Compile substitutes text into the template's single placeholder.
// The text is inserted verbatim; braces inside it are not interpreted.
func (t Template) Compile(text string) string {
	return strings.Replace(t.Body, Placeholder, text, 1)
}
