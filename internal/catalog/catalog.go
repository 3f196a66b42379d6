// Package catalog provides the immutable exercise catalog.
package catalog

import (
	"fmt"

	"github.com/verte-zerg/scribble/internal/model"
)

// Category names.
const (
	Letters   = "letters"
	Capitals  = "capitals"
	Numbers   = "numbers"
	Words     = "words"
	Shapes    = "shapes"
	Sentences = "sentences"
)

// DefaultMinStrokePoints applies to categories without their own threshold.
const DefaultMinStrokePoints = 5

var order = []string{Letters, Capitals, Numbers, Words, Shapes, Sentences}

var defaults = map[string]model.Exercise{
	Letters: {
		Title:           "Letter Practice",
		Items:           []string{"a", "b", "c", "d", "e"},
		MinStrokePoints: 5,
		Description:     "Practice writing individual letters. Focus on proper letter formation and consistent size.",
	},
	Capitals: {
		Title:           "Capital Letters",
		Items:           []string{"A", "B", "C", "D", "E"},
		MinStrokePoints: 6,
		Description:     "Practice capital letters. Pay attention to proper proportions and starting points.",
	},
	Numbers: {
		Title:           "Number Writing",
		Items:           []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"},
		MinStrokePoints: 4,
		Description:     "Practice writing numbers clearly. Focus on proper formation and alignment.",
	},
	Words: {
		Title:           "Common Words",
		Items:           []string{"the", "and", "was", "for", "that"},
		MinStrokePoints: 10,
		Description:     "Practice writing common words. Focus on letter spacing and word shape.",
	},
	Shapes: {
		Title:           "Basic Shapes",
		Items:           []string{"circle", "square", "triangle", "line", "curve"},
		MinStrokePoints: 8,
		Description:     "Practice drawing basic shapes to improve hand control and spatial awareness.",
	},
	Sentences: {
		Title:           "Simple Sentences",
		Items:           []string{"The cat sat.", "I can run.", "She is happy."},
		MinStrokePoints: 20,
		Description:     "Practice writing complete sentences. Focus on spacing between words and punctuation.",
	},
}

// Catalog maps category names to exercises. It is never mutated after New.
type Catalog struct {
	exercises map[string]model.Exercise
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, _ := New(nil)
	return c
}

// New builds a catalog, replacing the items of the named categories.
func New(items map[string][]string) (*Catalog, error) {
	c := &Catalog{exercises: make(map[string]model.Exercise, len(defaults))}
	for name, ex := range defaults {
		ex.Category = name
		ex.Items = append([]string(nil), ex.Items...)
		c.exercises[name] = ex
	}
	for name, list := range items {
		ex, ok := c.exercises[name]
		if !ok {
			return nil, fmt.Errorf("unknown category %q", name)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("category %q needs at least one item", name)
		}
		ex.Items = append([]string(nil), list...)
		c.exercises[name] = ex
	}
	return c, nil
}

// Lookup returns a copy of the exercise for category.
func (c *Catalog) Lookup(category string) (model.Exercise, bool) {
	ex, ok := c.exercises[category]
	if !ok {
		return model.Exercise{}, false
	}
	ex.Items = append([]string(nil), ex.Items...)
	return ex, true
}

// ItemCount returns the number of items in category, 0 if unknown.
func (c *Catalog) ItemCount(category string) int {
	return len(c.exercises[category].Items)
}

// Item returns the content at index. ok is false for an unknown category or index.
func (c *Catalog) Item(category string, index int) (string, bool) {
	ex, found := c.exercises[category]
	if !found || index < 0 || index >= len(ex.Items) {
		return "", false
	}
	return ex.Items[index], true
}

// Categories lists categories in display order.
func (c *Catalog) Categories() []string {
	return append([]string(nil), order...)
}

// MinStrokePoints returns the density threshold for category.
func (c *Catalog) MinStrokePoints(category string) int {
	return MinStrokePoints(category)
}

// MinStrokePoints returns the built-in density threshold for category.
func MinStrokePoints(category string) int {
	if ex, ok := defaults[category]; ok {
		return ex.MinStrokePoints
	}
	return DefaultMinStrokePoints
}
