// Package devtools provides developer tools for checking layouts.
package devtools

import (
	"fmt"
	"io"
	"io/fs"
	"strings"

	"promptscape/pkg/engine/surface"
	"promptscape/pkg/engine/template"
)

// Sample values substituted when a layout is dumped outside the running app.
var sampleVars = map[string]string{
	"levelTitle": "Sample level title",
	"levelId":    "0",
	"background": "images/group1/background.png",
	"foreground": "images/group1/foreground.png",
}

var kindSymbols = map[surface.Kind]string{
	surface.KindContainer: "container",
	surface.KindText:      "text",
	surface.KindImage:     "image",
	surface.KindButton:    "button",
	surface.KindAudio:     "audio",
}

// DumpLayout renders the layout at path with sample values and writes one line per
// element to w, in draw order.
func DumpLayout(w io.Writer, templates fs.FS, path string) error {
	s := surface.New()
	if err := template.RenderInto(s, templates, path, sampleVars); err != nil {
		return err
	}
	return WriteSurface(w, s)
}

// WriteSurface writes the surface's elements as a table.
func WriteSurface(w io.Writer, s *surface.Surface) error {
	if _, err := fmt.Fprintf(w, "# %s (%d elements)\n", s.Name(), len(s.Elements())); err != nil {
		return err
	}
	root := s.Root()
	for _, el := range s.Elements() {
		if _, err := fmt.Fprintln(w, describe(el, el == root)); err != nil {
			return err
		}
	}
	return nil
}

func describe(el *surface.Element, isRoot bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-9s L%d  x=%.2f y=%.2f w=%.2f h=%.2f  a=%.2f",
		el.ID, kindSymbols[el.Kind], el.Layer, el.X, el.Y, el.W, el.H, el.Opacity())

	var flags []string
	if isRoot {
		flags = append(flags, "root")
	}
	if el.Parallax != 0 {
		flags = append(flags, fmt.Sprintf("parallax=%g", el.Parallax))
	}
	if el.Rotates {
		flags = append(flags, "rotates")
	}
	if el.Draggable {
		flags = append(flags, "draggable")
	}
	if el.Disabled {
		flags = append(flags, "disabled")
	}
	if len(flags) > 0 {
		b.WriteString("  [" + strings.Join(flags, " ") + "]")
	}

	switch el.Kind {
	case surface.KindText:
		fmt.Fprintf(&b, "  %q", el.Text())
	case surface.KindButton:
		fmt.Fprintf(&b, "  %q", el.Label())
	case surface.KindImage, surface.KindAudio:
		if el.Src == "" {
			b.WriteString("  (no src)")
		} else {
			b.WriteString("  " + el.Src)
		}
	}
	return b.String()
}
