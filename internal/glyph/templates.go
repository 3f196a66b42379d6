// Package glyph holds the reference letter templates and the positional matcher.
package glyph

import (
	"sort"
	"strings"

	"github.com/verte-zerg/scribble/internal/model"
)

// Paths in unit-square space, y growing downwards.
var templates = map[string][]model.Point{
	"a": {{X: 0.2, Y: 0.5}, {X: 0.4, Y: 0.3}, {X: 0.6, Y: 0.5}, {X: 0.4, Y: 0.7}, {X: 0.2, Y: 0.5}},
	"b": {{X: 0.2, Y: 0.3}, {X: 0.2, Y: 0.7}, {X: 0.4, Y: 0.7}, {X: 0.6, Y: 0.6}, {X: 0.4, Y: 0.5}, {X: 0.2, Y: 0.5}},
	"c": {{X: 0.6, Y: 0.4}, {X: 0.4, Y: 0.3}, {X: 0.2, Y: 0.5}, {X: 0.4, Y: 0.7}, {X: 0.6, Y: 0.6}},
	"d": {{X: 0.6, Y: 0.3}, {X: 0.6, Y: 0.7}, {X: 0.4, Y: 0.7}, {X: 0.2, Y: 0.5}, {X: 0.4, Y: 0.3}, {X: 0.6, Y: 0.3}},
	"e": {{X: 0.6, Y: 0.5}, {X: 0.4, Y: 0.5}, {X: 0.2, Y: 0.5}, {X: 0.4, Y: 0.7}, {X: 0.6, Y: 0.6}},
}

// Lookup returns the template for content, compared in lower case.
// The returned points are a copy.
func Lookup(content string) (model.Template, bool) {
	name := strings.ToLower(content)
	points, ok := templates[name]
	if !ok {
		return model.Template{}, false
	}
	cp := make([]model.Point, len(points))
	copy(cp, points)
	return model.Template{Name: name, Points: cp}, true
}

// Names lists the template lexicon in sorted order.
func Names() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
