// Package template loads screen layouts: INI fragments with {{placeholders}} that are
// substituted and then rendered into a surface, replacing its previous content.
//
// Each section of a layout is one element, the section name being its id:
//
//	[levelTitle]
//	kind  = text
//	x     = 0.5
//	y     = 0.1
//	size  = 32
//	align = center
//	text  = {{levelTitle}}
package template

import (
	"fmt"
	"io/fs"
	"regexp"

	"gopkg.in/ini.v1"

	"promptscape/pkg/engine/surface"
)

var placeholder = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// LoadError reports a template that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load template %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Substitute replaces every {{key}} with vars[key], or with an empty string when the
// key is absent. Keys are case-sensitive.
func Substitute(src string, vars map[string]string) string {
	return placeholder.ReplaceAllStringFunc(src, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		return vars[key]
	})
}

// RenderInto reads the layout at path, substitutes vars, and replaces the target's
// whole element tree with the result. No retry is attempted on failure and the target
// is left untouched.
func RenderInto(target *surface.Surface, fsys fs.FS, path string, vars map[string]string) error {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}

	elements, err := Parse(Substitute(string(raw), vars))
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}

	target.Replace(path, elements)
	return nil
}

// Parse turns an already-substituted layout into elements, in file order.
func Parse(src string) ([]*surface.Element, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, []byte(src))
	if err != nil {
		return nil, err
	}

	var elements []*surface.Element
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		elements = append(elements, parseElement(sec))
	}
	return elements, nil
}

func parseElement(sec *ini.Section) *surface.Element {
	el := surface.NewElement(sec.Name(), surface.ParseKind(sec.Key("kind").String()))

	el.Layer = sec.Key("layer").MustInt(0)
	el.X = sec.Key("x").MustFloat64(0)
	el.Y = sec.Key("y").MustFloat64(0)
	el.W = sec.Key("w").MustFloat64(0)
	el.H = sec.Key("h").MustFloat64(0)
	el.Size = sec.Key("size").MustFloat64(18)
	if sec.HasKey("align") {
		el.Align = sec.Key("align").String()
	}
	el.Src = sec.Key("src").String()
	el.Parallax = sec.Key("parallax").MustFloat64(0)
	el.Rotates = sec.Key("rotates").MustBool(false)
	el.Draggable = sec.Key("draggable").MustBool(false)
	el.Disabled = sec.Key("disabled").MustBool(false)
	el.SetText(sec.Key("text").String())
	el.SetLabel(sec.Key("label").String())
	if sec.HasKey("opacity") {
		el.SetOpacity(sec.Key("opacity").MustFloat64(1))
	}
	return el
}
