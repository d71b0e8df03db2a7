package wardrobe

import (
	"context"
	"errors"
	"testing"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gdugdh24/mirrorfit-backend/internal/repository/memory"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testImage = "data:image/jpeg;base64,/9j/4A=="

type fakeTagger struct {
	tags  domain.ItemTags
	err   error
	calls int
}

func (f *fakeTagger) TagItem(_ context.Context, _ domain.Image) (domain.ItemTags, error) {
	f.calls++
	return f.tags, f.err
}

func setup(t *testing.T, tagger *fakeTagger, withPhoto bool) (*WardrobeUseCase, string) {
	t.Helper()
	ctx := context.Background()
	repo, err := memory.NewSessionRepository(8)
	require.NoError(t, err)
	s, err := repo.Create(ctx)
	require.NoError(t, err)
	if withPhoto {
		_, err = repo.SetProfile(ctx, s.ID, &domain.UserProfile{PhotoBase64: domain.Ptr(testImage)})
		require.NoError(t, err)
	}
	return NewWardrobeUseCase(repo, flow.NewFlowUseCase(repo, nil), tagger), s.ID
}

func TestFilter(t *testing.T) {
	items := domain.DemoWardrobe()

	all, err := Filter(items, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	tops, err := Filter(items, "tops")
	require.NoError(t, err)
	require.Len(t, tops, 1)
	assert.Equal(t, "1", tops[0].ID)

	shoes, err := Filter(items, "Shoes")
	require.NoError(t, err)
	assert.Empty(t, shoes)

	_, err = Filter(items, "Hats")
	assert.ErrorIs(t, err, domain.ErrActionDisabled)
}

func TestLookupTab(t *testing.T) {
	tab, err := LookupTab("")
	require.NoError(t, err)
	assert.Equal(t, "All", tab.Label)

	tab, err = LookupTab("dresses")
	require.NoError(t, err)
	assert.Equal(t, "Dress", tab.Type)

	_, err = LookupTab("Hats")
	assert.ErrorIs(t, err, domain.ErrActionDisabled)
}

func TestAdd_Prepends(t *testing.T) {
	tagger := &fakeTagger{}
	uc, id := setup(t, tagger, true)
	ctx := context.Background()

	s, err := uc.Add(ctx, id, &AddItemRequest{
		Type:     "Shoes",
		ImageURL: "https://example.com/boots.jpg",
		Tags:     []string{"leather", "brown"},
	})
	require.NoError(t, err)

	require.Len(t, s.Wardrobe, 4)
	added := s.Wardrobe[0]
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "Shoes", added.Type)
	assert.Equal(t, []string{"leather", "brown"}, added.Tags)
	assert.Zero(t, tagger.calls)

	shoes, err := uc.List(ctx, id, "Shoes")
	require.NoError(t, err)
	require.Len(t, shoes, 1)
	assert.Equal(t, added.ID, shoes[0].ID)
}

func TestAdd_AutoTag(t *testing.T) {
	tagger := &fakeTagger{tags: domain.ItemTags{Type: "Top", Color: "red", Pattern: "striped", Style: "casual"}}
	uc, id := setup(t, tagger, true)

	s, err := uc.Add(context.Background(), id, &AddItemRequest{ImageURL: testImage, AutoTag: true})
	require.NoError(t, err)

	added := s.Wardrobe[0]
	assert.Equal(t, "Top", added.Type)
	assert.Equal(t, []string{"Top", "red", "striped", "casual"}, added.Tags)
	assert.Equal(t, "red", added.Metadata["color"])
	assert.Equal(t, "striped", added.Metadata["pattern"])
	assert.Equal(t, "casual", added.Metadata["style"])
}

func TestAdd_AutoTagFailurePropagates(t *testing.T) {
	tagger := &fakeTagger{err: domain.ErrMalformedAIResponse}
	uc, id := setup(t, tagger, true)
	ctx := context.Background()

	_, err := uc.Add(ctx, id, &AddItemRequest{ImageURL: testImage, AutoTag: true})
	assert.ErrorIs(t, err, domain.ErrMalformedAIResponse)

	items, err := uc.List(ctx, id, "")
	require.NoError(t, err)
	assert.Len(t, items, 3)

	_, err = uc.Add(ctx, id, &AddItemRequest{ImageURL: "https://example.com/a.jpg", AutoTag: true})
	assert.ErrorIs(t, err, domain.ErrInvalidImage)

	tagger.err = errors.New("timeout")
	_, err = uc.Add(ctx, id, &AddItemRequest{ImageURL: testImage, AutoTag: true})
	assert.Error(t, err)
}

func TestWardrobe_Gated(t *testing.T) {
	uc, id := setup(t, &fakeTagger{}, false)
	ctx := context.Background()

	_, err := uc.List(ctx, id, "")
	assert.ErrorIs(t, err, domain.ErrNoProfile)
	_, err = uc.Add(ctx, id, &AddItemRequest{ImageURL: "https://example.com/a.jpg"})
	assert.ErrorIs(t, err, domain.ErrNoProfile)
}
