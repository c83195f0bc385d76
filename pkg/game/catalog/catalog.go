// Package catalog holds the fixed list of levels and image groups.
package catalog

import (
	_ "embed"
	"fmt"
	"math/rand/v2"

	"github.com/tidwall/gjson"
)

//go:embed catalog.json
var catalogJSON []byte

// Level is one prompt screen.
type Level struct {
	ID    int
	Title string
}

// ImageGroup is a background/foreground image pair.
type ImageGroup struct {
	ID         int
	Background string
	Foreground string
}

var (
	levels      []Level
	imageGroups []ImageGroup
)

func init() {
	var err error
	levels, imageGroups, err = Parse(catalogJSON)
	if err != nil {
		panic(err)
	}
}

// Parse reads a catalog document.
func Parse(data []byte) ([]Level, []ImageGroup, error) {
	if !gjson.ValidBytes(data) {
		return nil, nil, fmt.Errorf("catalog: invalid JSON")
	}
	doc := gjson.ParseBytes(data)

	var ls []Level
	seen := make(map[int]bool)
	var parseErr error
	doc.Get("levels").ForEach(func(_, v gjson.Result) bool {
		l := Level{ID: int(v.Get("id").Int()), Title: v.Get("title").String()}
		if l.ID <= 0 || seen[l.ID] {
			parseErr = fmt.Errorf("catalog: bad or duplicate level id %d", l.ID)
			return false
		}
		seen[l.ID] = true
		ls = append(ls, l)
		return true
	})
	if parseErr != nil {
		return nil, nil, parseErr
	}
	if len(ls) == 0 {
		return nil, nil, fmt.Errorf("catalog: no levels")
	}

	var gs []ImageGroup
	doc.Get("imageGroups").ForEach(func(_, v gjson.Result) bool {
		gs = append(gs, ImageGroup{
			ID:         int(v.Get("id").Int()),
			Background: v.Get("background").String(),
			Foreground: v.Get("foreground").String(),
		})
		return true
	})
	return ls, gs, nil
}

// Levels returns a copy of the level catalog, in order.
func Levels() []Level {
	return append([]Level(nil), levels...)
}

// ImageGroups returns a copy of the image groups, in order.
func ImageGroups() []ImageGroup {
	return append([]ImageGroup(nil), imageGroups...)
}

// PickRandomLevel returns a uniformly random level. Repeats are allowed.
func PickRandomLevel() Level {
	return levels[rand.IntN(len(levels))]
}

// PickLevel is PickRandomLevel with an explicit random source.
func PickLevel(r *rand.Rand) Level {
	return levels[r.IntN(len(levels))]
}
