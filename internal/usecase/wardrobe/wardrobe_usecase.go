package wardrobe

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gdugdh24/mirrorfit-backend/internal/repository"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/flow"
	"github.com/google/uuid"
)

// Tagger derives wardrobe descriptors from a garment photo.
type Tagger interface {
	TagItem(ctx context.Context, img domain.Image) (domain.ItemTags, error)
}

// Tab is one category filter of the wardrobe grid.
type Tab struct {
	Label string `json:"label"`
	Type  string `json:"type,omitempty"`
}

var Tabs = []Tab{
	{Label: "All"},
	{Label: "Tops", Type: "Top"},
	{Label: "Bottoms", Type: "Bottom"},
	{Label: "Dresses", Type: "Dress"},
	{Label: "Shoes", Type: "Shoes"},
}

// AddItemRequest describes a new wardrobe item. With AutoTag set the image
// must be inline data; tags and, when empty, the type come from the AI service.
type AddItemRequest struct {
	Type     string         `json:"type" binding:"omitempty,max=50"`
	ImageURL string         `json:"image_url" binding:"required"`
	Tags     []string       `json:"tags" binding:"omitempty,max=20,dive,min=1,max=50"`
	Metadata map[string]any `json:"metadata"`
	AutoTag  bool           `json:"auto_tag"`
}

type WardrobeUseCase struct {
	sessions repository.SessionRepository
	flow     *flow.FlowUseCase
	tagger   Tagger
}

func NewWardrobeUseCase(sessions repository.SessionRepository, flowUseCase *flow.FlowUseCase, tagger Tagger) *WardrobeUseCase {
	return &WardrobeUseCase{
		sessions: sessions,
		flow:     flowUseCase,
		tagger:   tagger,
	}
}

// LookupTab finds the tab labelled name; empty means All.
func LookupTab(name string) (Tab, error) {
	if name == "" {
		return Tabs[0], nil
	}
	i := slices.IndexFunc(Tabs, func(t Tab) bool { return strings.EqualFold(t.Label, name) })
	if i < 0 {
		return Tab{}, fmt.Errorf("%w: unknown tab %q", domain.ErrActionDisabled, name)
	}
	return Tabs[i], nil
}

// Filter returns the items shown under tab, in collection order.
func Filter(items []domain.WardrobeItem, tab string) ([]domain.WardrobeItem, error) {
	t, err := LookupTab(tab)
	if err != nil {
		return nil, err
	}
	if t.Type == "" {
		return items, nil
	}
	want := t.Type
	out := make([]domain.WardrobeItem, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(item.Type, want) {
			out = append(out, item)
		}
	}
	return out, nil
}

// List returns the wardrobe filtered by tab.
func (uc *WardrobeUseCase) List(ctx context.Context, sessionID, tab string) ([]domain.WardrobeItem, error) {
	s, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, redirected := uc.flow.Resolve(s, domain.ScreenWardrobe); redirected {
		return nil, domain.ErrNoProfile
	}
	return Filter(s.Wardrobe, tab)
}

// Add prepends a new item to the wardrobe.
func (uc *WardrobeUseCase) Add(ctx context.Context, sessionID string, req *AddItemRequest) (*domain.Session, error) {
	s, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, redirected := uc.flow.Resolve(s, domain.ScreenWardrobe); redirected {
		return nil, domain.ErrNoProfile
	}

	item := domain.WardrobeItem{
		ID:       uuid.NewString(),
		Type:     strings.TrimSpace(req.Type),
		ImageURL: req.ImageURL,
		Tags:     slices.Clone(req.Tags),
	}
	if req.Metadata != nil {
		item.Metadata = maps.Clone(req.Metadata)
	}

	if req.AutoTag {
		img, err := domain.ParseDataURL(req.ImageURL)
		if err != nil {
			return nil, err
		}
		tags, err := uc.tagger.TagItem(context.WithoutCancel(ctx), img)
		if err != nil {
			return nil, fmt.Errorf("failed to tag wardrobe item: %w", err)
		}
		if item.Type == "" {
			item.Type = tags.Type
		}
		if len(item.Tags) == 0 {
			item.Tags = tags.Tags()
		}
		if item.Metadata == nil {
			item.Metadata = map[string]any{}
		}
		item.Metadata["color"] = tags.Color
		item.Metadata["pattern"] = tags.Pattern
		item.Metadata["style"] = tags.Style
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}

	return uc.sessions.AddWardrobeItem(ctx, sessionID, item)
}
