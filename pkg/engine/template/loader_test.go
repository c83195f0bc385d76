package template

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"promptscape/pkg/engine/surface"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name string
		src  string
		vars map[string]string
		want string
	}{
		{"single", "<{{levelTitle}}>", map[string]string{"levelTitle": "X"}, "<X>"},
		{"repeated", "{{levelTitle}}-{{levelTitle}}", map[string]string{"levelTitle": "X"}, "X-X"},
		{"inner spaces", "{{ levelTitle }}", map[string]string{"levelTitle": "X"}, "X"},
		{"unknown key", "a{{missing}}b", map[string]string{"levelTitle": "X"}, "ab"},
		{"case sensitive", "{{LevelTitle}}", map[string]string{"levelTitle": "X"}, ""},
		{"nil vars", "{{levelTitle}}!", nil, "!"},
		{"not a token", "{{level-title}}", map[string]string{"level-title": "X"}, "{{level-title}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Substitute(tt.src, tt.vars); got != tt.want {
				t.Errorf("Substitute(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestSubstitute_NoRecognisedTokensRemain(t *testing.T) {
	got := Substitute("text = {{levelTitle}}\nalt = {{ levelTitle }}\n", map[string]string{"levelTitle": "Is love a choice?"})
	if strings.Contains(got, "{{") {
		t.Errorf("Substitute left placeholder syntax: %q", got)
	}
	if strings.Count(got, "Is love a choice?") != 2 {
		t.Errorf("Substitute = %q, want two replacements", got)
	}
}

const levelLayout = `
[level]
kind = container

[levelTitle]
kind  = text
x     = 0.5
y     = 0.1
size  = 32
align = center
text  = {{levelTitle}}

[nextBtn]
kind     = button
label    = NEXT
x        = 0.7
y        = 0.85
w        = 0.2
h        = 0.08
disabled = true
layer    = 5

[background]
kind     = image
src      = {{background}}
parallax = 40
layer    = -1
`

func TestRenderInto_ReplacesSurfaceContent(t *testing.T) {
	fsys := fstest.MapFS{
		"level.ini": {Data: []byte(levelLayout)},
	}
	s := surface.New()
	s.Replace("old", []*surface.Element{surface.NewElement("stale", surface.KindButton)})

	err := RenderInto(s, fsys, "level.ini", map[string]string{"levelTitle": "Am I ready to let go?", "background": "img/bg1.png"})
	if err != nil {
		t.Fatalf("RenderInto() error = %v", err)
	}

	if s.Find("stale") != nil {
		t.Error("old element still reachable after RenderInto")
	}
	title := s.Find("levelTitle")
	if title == nil {
		t.Fatal("levelTitle element missing")
	}
	if title.Text() != "Am I ready to let go?" {
		t.Errorf("title text = %q, want %q", title.Text(), "Am I ready to let go?")
	}
	if title.Align != "center" || title.Size != 32 {
		t.Errorf("title align/size = %q/%v, want center/32", title.Align, title.Size)
	}
	next := s.Find("nextBtn")
	if next == nil || next.Kind != surface.KindButton || !next.Disabled || next.Label() != "NEXT" {
		t.Errorf("nextBtn = %+v, want disabled button labelled NEXT", next)
	}
	if bg := s.Find("background"); bg == nil || bg.Src != "img/bg1.png" || bg.Parallax != 40 {
		t.Errorf("background = %+v, want image img/bg1.png with parallax 40", bg)
	}
	if s.Root() == nil || s.Root().ID != "level" {
		t.Errorf("Root() = %v, want the level container", s.Root())
	}
	if els := s.Elements(); els[0].ID != "background" {
		t.Errorf("first drawn element = %q, want background (lowest layer)", els[0].ID)
	}
}

func TestRenderInto_MissingFileIsLoadError(t *testing.T) {
	s := surface.New()
	s.Replace("intro.ini", []*surface.Element{surface.NewElement("keep", surface.KindText)})

	err := RenderInto(s, fstest.MapFS{}, "level.ini", nil)

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("RenderInto() error = %v, want *LoadError", err)
	}
	if loadErr.Path != "level.ini" {
		t.Errorf("LoadError.Path = %q, want level.ini", loadErr.Path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("errors.Is(err, fs.ErrNotExist) = false, want true")
	}
	if s.Find("keep") == nil {
		t.Error("surface content changed after a failed load")
	}
}
