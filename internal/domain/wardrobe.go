package domain

import (
	"maps"
	"slices"
)

// WardrobeItem is one article of clothing owned by the user.
type WardrobeItem struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	ImageURL string         `json:"image_url"`
	Tags     []string       `json:"tags"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (w WardrobeItem) Clone() WardrobeItem {
	c := w
	c.Tags = slices.Clone(w.Tags)
	if w.Metadata != nil {
		c.Metadata = maps.Clone(w.Metadata)
	}
	return c
}

// DemoWardrobe returns the entries every new session starts with.
func DemoWardrobe() []WardrobeItem {
	return []WardrobeItem{
		{ID: "1", Type: "Top", ImageURL: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400", Tags: []string{"casual", "white", "t-shirt"}},
		{ID: "2", Type: "Bottom", ImageURL: "https://images.unsplash.com/photo-1542272617-08f086302542?w=400", Tags: []string{"jeans", "denim", "blue"}},
		{ID: "3", Type: "Dress", ImageURL: "https://images.unsplash.com/photo-1515372039744-b8f02a3ae446?w=400", Tags: []string{"floral", "summer", "dress"}},
	}
}

// ItemTags are the descriptors the AI service extracts from a garment photo.
type ItemTags struct {
	Type    string `json:"type"`
	Color   string `json:"color"`
	Pattern string `json:"pattern"`
	Style   string `json:"style"`
}

// Tags flattens the descriptors into wardrobe tags, skipping blanks.
func (t ItemTags) Tags() []string {
	out := make([]string, 0, 4)
	for _, v := range []string{t.Type, t.Color, t.Pattern, t.Style} {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
